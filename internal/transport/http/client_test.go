package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"syscall"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func okResponse(r *http.Request) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("ok")),
		Header:     http.Header{},
		Request:    r,
	}
}

func newPost(t *testing.T, url, body string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	return req
}

func TestRetryTransport_RetriesConnectionResets(t *testing.T) {
	t.Parallel()

	var bodies []string
	calls := 0
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		if calls < 3 {
			return nil, syscall.ECONNRESET
		}
		return okResponse(r), nil
	})

	client := NewClient(WithBaseTransport(base))
	resp, err := client.Do(newPost(t, "https://api.example.com/x", `{"a":1}`))
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	for i, b := range bodies {
		if b != `{"a":1}` {
			t.Fatalf("attempt %d body = %q, want replayed body", i+1, b)
		}
	}
}

func TestRetryTransport_StopsAfterMaxRetries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		maxRetries int
		wantCalls  int
	}{
		{name: "default", maxRetries: DefaultMaxRetries, wantCalls: DefaultMaxRetries + 1},
		{name: "two", maxRetries: 2, wantCalls: 3},
		{name: "disabled", maxRetries: 0, wantCalls: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			base := roundTripFunc(func(*http.Request) (*http.Response, error) {
				calls++
				return nil, syscall.ECONNREFUSED
			})

			client := NewClient(WithBaseTransport(base), WithMaxRetries(tc.maxRetries))
			_, err := client.Do(newPost(t, "https://api.example.com/x", "{}"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, syscall.ECONNREFUSED) {
				t.Fatalf("expected ECONNREFUSED, got %v", err)
			}
			if calls != tc.wantCalls {
				t.Fatalf("calls = %d, want %d", calls, tc.wantCalls)
			}
		})
	}
}

func TestRetryTransport_NoRetryForPlainHTTP(t *testing.T) {
	t.Parallel()

	calls := 0
	base := roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls++
		return nil, syscall.ECONNRESET
	})

	client := NewClient(WithBaseTransport(base))
	if _, err := client.Do(newPost(t, "http://api.example.com/x", "{}")); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestRetryTransport_NoRetryOnStatusOrPermanentError(t *testing.T) {
	t.Parallel()

	t.Run("server error status", func(t *testing.T) {
		t.Parallel()
		calls := 0
		base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			resp := okResponse(r)
			resp.StatusCode = http.StatusServiceUnavailable
			return resp, nil
		})
		resp, err := NewClient(WithBaseTransport(base)).Do(newPost(t, "https://api.example.com/x", "{}"))
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		resp.Body.Close()
		if calls != 1 {
			t.Fatalf("calls = %d, want 1", calls)
		}
	})

	t.Run("permanent error", func(t *testing.T) {
		t.Parallel()
		calls := 0
		base := roundTripFunc(func(*http.Request) (*http.Response, error) {
			calls++
			return nil, errors.New("x509: certificate signed by unknown authority")
		})
		if _, err := NewClient(WithBaseTransport(base)).Do(newPost(t, "https://api.example.com/x", "{}")); err == nil {
			t.Fatal("expected error")
		}
		if calls != 1 {
			t.Fatalf("calls = %d, want 1", calls)
		}
	})
}

func TestNewClient_CertificateValidation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	t.Run("validating client rejects self-signed", func(t *testing.T) {
		t.Parallel()
		client := NewClient(WithValidateCertificate(true), WithMaxRetries(0))
		if _, err := client.Get(srv.URL); err == nil {
			t.Fatal("expected certificate error")
		}
	})

	t.Run("non-validating client accepts self-signed", func(t *testing.T) {
		t.Parallel()
		client := NewClient(WithValidateCertificate(false))
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})
}
