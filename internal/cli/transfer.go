package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/model"
)

// Document formats accepted by export and import.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NewExportCommand writes the whole document to stdout or a file.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole document as JSON or YAML",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && !cmd.Flags().Changed("format") {
				format = formatFor(output)
			}
			if format != FormatJSON && format != FormatYAML {
				return NewExitError(ExitUsage, fmt.Sprintf("format %q: want json or yaml", format))
			}
			svc, err := opts.service()
			if err != nil {
				return err
			}
			lists, err := svc.Lists(cmd.Context())
			if err != nil {
				return err
			}
			data, err := encodeDocument(lists, format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			opts.printer(cmd).OK(fmt.Sprintf("exported %d lists to %s", len(lists), output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", FormatJSON, "output format (json|yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

// NewImportCommand replaces the stored document with a file's contents.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole document with a JSON or YAML file",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if format == "" {
				format = formatFor(path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			lists, err := decodeDocument(data, format)
			if err != nil {
				return WrapExitError(ExitUsage, path, err)
			}
			svc, err := opts.service()
			if err != nil {
				return err
			}
			if err := svc.Repository().Save(cmd.Context(), lists); err != nil {
				return err
			}
			opts.printer(cmd).OK(fmt.Sprintf("imported %d lists from %s", len(lists), path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format (json|yaml); default from the file extension")
	return cmd
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

func encodeDocument(lists model.Lists, format string) ([]byte, error) {
	if lists == nil {
		lists = model.Lists{}
	}
	if format == FormatYAML {
		return yaml.Marshal(lists)
	}
	data, err := json.MarshalIndent(lists, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decodeDocument parses and validates an imported document. Unlike loading
// from the store, a malformed import is an error rather than an empty set.
func decodeDocument(data []byte, format string) (model.Lists, error) {
	var lists model.Lists
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &lists)
	case FormatJSON:
		err = json.Unmarshal(data, &lists)
	default:
		return nil, fmt.Errorf("format %q: want json or yaml", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	return lists.Normalize()
}
