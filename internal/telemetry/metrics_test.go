package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rhpds/assisted-add-manifest/internal/core"
)

func TestOutcome(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: OutcomeSuccess},
		{name: "input", err: &core.ErrInvalidInput{Field: "cluster_id"}, want: OutcomeInvalidInput},
		{name: "auth wrapped", err: fmt.Errorf("get access token: %w", &core.ErrAuthentication{StatusCode: 401}), want: OutcomeAuthentication},
		{name: "upload", err: &core.ErrUpload{StatusCode: 400}, want: OutcomeUpload},
		{name: "transport", err: &core.ErrTransport{Op: "x", Err: errors.New("reset")}, want: OutcomeTransport},
		{name: "other", err: errors.New("boom"), want: OutcomeError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Outcome(tc.err); got != tc.want {
				t.Fatalf("Outcome(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

// Not parallel: New installs the global meter provider.
func TestMetrics_RecordAndWriteTextfile(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = m.Shutdown(context.Background()) }()

	ctx := context.Background()
	m.Record(ctx, core.OperationTokenExchange, nil, 10*time.Millisecond)
	m.Record(ctx, core.OperationManifestUpload, &core.ErrUpload{StatusCode: 400}, 20*time.Millisecond)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	var found bool
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "assisted_operations") {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["operation"] == core.OperationManifestUpload && labels["outcome"] == OutcomeUpload {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected an assisted_operations sample for the failed upload")
	}

	path := filepath.Join(t.TempDir(), "assisted.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), "assisted_operations") {
		t.Fatalf("textfile missing operations metric:\n%s", b)
	}
}
