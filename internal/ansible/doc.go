package ansible

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Documentation mirrors the DOCUMENTATION, EXAMPLES and RETURN blocks
// of a module.
type Documentation struct {
	Module           string
	ShortDescription string
	Description      string
	VersionAdded     string
	Author           []string
	Examples         string
	Returns          []ReturnValue
}

// ReturnValue documents one key of the result document.
type ReturnValue struct {
	Name        string
	Description string
	Type        string
	Returned    string
}

type optionDoc struct {
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
	Type        string `yaml:"type"`
	Default     any    `yaml:"default,omitempty"`
	NoLog       bool   `yaml:"no_log,omitempty"`
}

type returnDoc struct {
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Returned    string `yaml:"returned"`
}

// Render produces the three documentation blocks as YAML, with options
// listed in spec order.
func (d Documentation) Render(spec ArgumentSpec) ([]byte, error) {
	options := make(yaml.MapSlice, 0, len(spec))
	for _, a := range spec {
		options = append(options, yaml.MapItem{Key: a.Name, Value: optionDoc{
			Description: a.Description,
			Required:    a.Required,
			Type:        a.Type,
			Default:     a.Default,
			NoLog:       a.NoLog,
		}})
	}

	returns := make(yaml.MapSlice, 0, len(d.Returns))
	for _, r := range d.Returns {
		returns = append(returns, yaml.MapItem{Key: r.Name, Value: returnDoc{
			Description: r.Description,
			Type:        r.Type,
			Returned:    r.Returned,
		}})
	}

	out := yaml.MapSlice{
		{Key: "DOCUMENTATION", Value: yaml.MapSlice{
			{Key: "module", Value: d.Module},
			{Key: "short_description", Value: d.ShortDescription},
			{Key: "version_added", Value: d.VersionAdded},
			{Key: "description", Value: d.Description},
			{Key: "options", Value: options},
			{Key: "author", Value: d.Author},
		}},
		{Key: "EXAMPLES", Value: d.Examples},
		{Key: "RETURN", Value: returns},
	}

	b, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("render %s documentation: %w", d.Module, err)
	}
	return b, nil
}
