package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// render writes v in the requested format. "table" uses rows when given and
// falls back to TOML otherwise. title becomes a comment header for TOML and
// YAML output.
func render(w io.Writer, format string, v interface{}, title string, rows pterm.TableData) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal %s to JSON: %w", title, err)
		}
		fmt.Fprintln(w, string(data))

	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal %s to YAML: %w", title, err)
		}
		fmt.Fprintf(w, "# %s\n%s", title, string(data))

	case "table":
		if rows != nil {
			return renderTable(w, rows)
		}
		fallthrough

	case "toml":
		data, err := toml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal %s to TOML: %w", title, err)
		}
		fmt.Fprintf(w, "# %s\n%s", title, string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: table, toml, json, yaml)", format)
	}
	return nil
}

func renderTable(w io.Writer, rows pterm.TableData) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	fmt.Fprintln(w, table)
	return nil
}
