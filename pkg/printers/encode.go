package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Encode writes v as json or yaml. YAML documents reuse the json field
// names so both formats agree.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Render encodes v when format is set and otherwise draws it with pretty.
func (pp *PrettyPrint) Render(format string, v any, pretty func()) error {
	if format != "" {
		return Encode(pp.out(), format, v)
	}
	pretty()
	return nil
}

// Printf writes a plain status line.
func (pp *PrettyPrint) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(pp.out(), format, args...)
}
