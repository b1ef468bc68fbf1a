package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by -o/--output.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", formatTable, "Output format (table, json, yaml)")
}

// outputResource writes v in the requested format, using table for the
// table format.
func outputResource(w io.Writer, outputFormat string, v interface{}, table func() error) error {
	switch outputFormat {
	case formatJSON:
		return outputJSON(w, v)
	case formatYAML:
		return outputYAML(w, v)
	case formatTable, "":
		return table()
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// outputJSON outputs v in JSON format
func outputJSON(w io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

// outputYAML outputs v in YAML format
func outputYAML(w io.Writer, v interface{}) error {
	yamlData, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	fmt.Fprint(w, string(yamlData))
	return nil
}
