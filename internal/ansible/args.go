// Package ansible implements the binary module protocol: decoding the
// argument file Ansible hands to the executable, coercing parameters
// against an argument spec, and encoding the result document.
package ansible

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Parameter types understood by Argument.
const (
	TypeStr  = "str"
	TypeBool = "bool"
)

// NoLogValue replaces no_log parameters in the echoed invocation.
const NoLogValue = "VALUE_SPECIFIED_IN_NO_LOG_PARAMETER"

// wrapperKey is the envelope AnsiballZ wraps module arguments in.
const wrapperKey = "ANSIBLE_MODULE_ARGS"

// Argument describes one module parameter.
type Argument struct {
	Name        string
	Type        string
	Required    bool
	Default     any
	NoLog       bool
	Description string
}

// ArgumentSpec is the ordered list of parameters a module accepts.
type ArgumentSpec []Argument

func (s ArgumentSpec) names() []string {
	out := make([]string, 0, len(s))
	for _, a := range s {
		out = append(out, a.Name)
	}
	sort.Strings(out)
	return out
}

// Params holds coerced parameter values keyed by name.
type Params map[string]any

func (p Params) String(name string) string {
	s, _ := p[name].(string)
	return s
}

func (p Params) Bool(name string) bool {
	b, _ := p[name].(bool)
	return b
}

// Invocation is one parsed module run.
type Invocation struct {
	Module    string
	Params    Params
	CheckMode bool
	NoLog     bool
	spec      ArgumentSpec
}

// ModuleArgs returns the parameters as Ansible echoes them back under
// invocation.module_args, with no_log values masked.
func (inv *Invocation) ModuleArgs() map[string]any {
	out := make(map[string]any, len(inv.Params))
	for _, a := range inv.spec {
		v, ok := inv.Params[a.Name]
		if !ok {
			continue
		}
		if (a.NoLog || inv.NoLog) && v != nil {
			v = NoLogValue
		}
		out[a.Name] = v
	}
	return out
}

// ArgumentError is a parameter validation failure. Its message is shown
// to the user verbatim.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

// Parse decodes the argument file contents and validates them against
// spec. Internal "_ansible_" keys are consumed here.
func Parse(module string, data []byte, spec ArgumentSpec) (*Invocation, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ArgumentError{Msg: fmt.Sprintf("failed to parse module arguments as JSON: %v", err)}
	}
	if inner, ok := raw[wrapperKey].(map[string]any); ok {
		raw = inner
	}

	inv := &Invocation{
		Module: module,
		Params: make(Params, len(spec)),
		spec:   spec,
	}

	known := make(map[string]Argument, len(spec))
	for _, a := range spec {
		known[a.Name] = a
	}

	var unsupported []string
	for k, v := range raw {
		if strings.HasPrefix(k, "_ansible_") {
			if err := inv.applyInternal(k, v); err != nil {
				return nil, err
			}
			continue
		}
		if _, ok := known[k]; !ok {
			unsupported = append(unsupported, k)
		}
	}
	if len(unsupported) > 0 {
		sort.Strings(unsupported)
		return nil, &ArgumentError{Msg: fmt.Sprintf(
			"Unsupported parameters for (%s) module: %s. Supported parameters include: %s.",
			module, strings.Join(unsupported, ", "), strings.Join(spec.names(), ", "),
		)}
	}

	var missing []string
	for _, a := range spec {
		v, ok := raw[a.Name]
		if !ok || v == nil {
			if a.Required {
				missing = append(missing, a.Name)
				continue
			}
			inv.Params[a.Name] = a.Default
			continue
		}
		coerced, err := coerce(a, v)
		if err != nil {
			return nil, err
		}
		inv.Params[a.Name] = coerced
	}
	if len(missing) > 0 {
		return nil, &ArgumentError{Msg: "missing required arguments: " + strings.Join(missing, ", ")}
	}

	return inv, nil
}

func (inv *Invocation) applyInternal(key string, v any) error {
	switch key {
	case "_ansible_check_mode":
		b, err := toBool(v)
		if err != nil {
			return &ArgumentError{Msg: fmt.Sprintf("%s: %v", key, err)}
		}
		inv.CheckMode = b
	case "_ansible_no_log":
		b, err := toBool(v)
		if err != nil {
			return &ArgumentError{Msg: fmt.Sprintf("%s: %v", key, err)}
		}
		inv.NoLog = b
	}
	return nil
}

func coerce(a Argument, v any) (any, error) {
	switch a.Type {
	case TypeBool:
		b, err := toBool(v)
		if err != nil {
			return nil, &ArgumentError{Msg: fmt.Sprintf(
				"argument '%s' is of type %T and we were unable to convert to bool: %v", a.Name, v, err)}
		}
		return b, nil
	case TypeStr, "":
		switch v.(type) {
		case map[string]any, []any:
			return nil, &ArgumentError{Msg: fmt.Sprintf(
				"argument '%s' is of type %T and we were unable to convert to str", a.Name, v)}
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, &ArgumentError{Msg: fmt.Sprintf(
				"argument '%s' is of type %T and we were unable to convert to str: %v", a.Name, v, err)}
		}
		return s, nil
	default:
		return nil, fmt.Errorf("argument %q has unknown type %q", a.Name, a.Type)
	}
}

// toBool accepts the spellings Ansible treats as booleans.
func toBool(v any) (bool, error) {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "y", "on":
			return true, nil
		case "no", "n", "off":
			return false, nil
		}
	}
	return cast.ToBoolE(v)
}
