package ansible

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestFail_MergeKeepsProtocolKeys(t *testing.T) {
	t.Parallel()

	r := Fail("Request failed", map[string]any{
		"msg":    "from server",
		"failed": false,
		"code":   "404",
		"reason": "not found",
	})
	if !r.Failed() {
		t.Fatal("Failed() = false")
	}
	if r["msg"] != "Request failed" {
		t.Fatalf("msg = %v", r["msg"])
	}
	if r["code"] != "404" || r["reason"] != "not found" {
		t.Fatalf("merged fields missing: %v", r)
	}
}

func TestSkip(t *testing.T) {
	t.Parallel()

	r := Skip("no check mode")
	if r["skipped"] != true || r["changed"] != false {
		t.Fatalf("Skip() = %v", r)
	}
	if r.Failed() {
		t.Fatal("skip must not be a failure")
	}
}

func TestWrite_NoHTMLEscaping(t *testing.T) {
	t.Parallel()

	r := NewResult()
	r["result"] = `{"content":"<a> & <b>"}`

	var buf bytes.Buffer
	if err := Write(&buf, r); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<a> & <b>") {
		t.Fatalf("output escaped: %s", buf.String())
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["changed"] != false {
		t.Fatalf("changed = %v", decoded["changed"])
	}
}

func TestWithInvocation(t *testing.T) {
	t.Parallel()

	inv, err := Parse("m", []byte(`{"id": "a", "secret": "s"}`), testSpec())
	if err != nil {
		t.Fatal(err)
	}
	r := NewResult().WithInvocation(inv)
	invocation, ok := r["invocation"].(map[string]any)
	if !ok {
		t.Fatalf("invocation = %T", r["invocation"])
	}
	args, ok := invocation["module_args"].(map[string]any)
	if !ok || args["id"] != "a" {
		t.Fatalf("module_args = %v", invocation["module_args"])
	}
}
