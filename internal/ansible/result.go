package ansible

import (
	"encoding/json"
	"fmt"
	"io"
)

// Result is the JSON document a module prints on stdout.
type Result map[string]any

// reserved keys are never overwritten by merged response fields.
var reserved = map[string]struct{}{
	"failed":     {},
	"changed":    {},
	"msg":        {},
	"skipped":    {},
	"invocation": {},
}

// NewResult returns an unchanged, successful result.
func NewResult() Result {
	return Result{"changed": false}
}

// Fail returns a failure result. Keys of extra are merged in unless
// they collide with a protocol key.
func Fail(msg string, extra map[string]any) Result {
	r := Result{
		"failed":  true,
		"changed": false,
		"msg":     msg,
	}
	r.Merge(extra)
	return r
}

// Skip returns a skipped result, as used for unsupported check mode.
func Skip(msg string) Result {
	return Result{
		"skipped": true,
		"changed": false,
		"msg":     msg,
	}
}

// Merge copies extra into r, leaving protocol keys alone.
func (r Result) Merge(extra map[string]any) {
	for k, v := range extra {
		if _, ok := reserved[k]; ok {
			continue
		}
		r[k] = v
	}
}

// Failed reports whether r is a failure document.
func (r Result) Failed() bool {
	b, _ := r["failed"].(bool)
	return b
}

// WithInvocation attaches invocation.module_args.
func (r Result) WithInvocation(inv *Invocation) Result {
	if inv != nil {
		r["invocation"] = map[string]any{"module_args": inv.ModuleArgs()}
	}
	return r
}

// Write encodes r as a single JSON document.
func Write(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode module result: %w", err)
	}
	return nil
}
