package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type Renderer[T any] interface {
	Render(result T) error
}

// OutputFormat selects how results are written
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ParseOutputFormat maps --json / --yaml flags onto an OutputFormat
func ParseOutputFormat(jsonOut, yamlOut bool) (OutputFormat, error) {
	switch {
	case jsonOut && yamlOut:
		return "", fmt.Errorf("--json and --yaml are mutually exclusive")
	case jsonOut:
		return OutputJSON, nil
	case yamlOut:
		return OutputYAML, nil
	default:
		return OutputTable, nil
	}
}

// encode writes v as indented JSON or YAML
func encode(out io.Writer, format OutputFormat, v any) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
