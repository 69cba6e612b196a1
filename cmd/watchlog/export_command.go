package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"watchlog/internal/fileutil"
	"watchlog/internal/watchlist"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every entry as JSON or YAML",
		Long: `Write every entry, newest first, as JSON (the stored format) or YAML.
JSON exports can be read back with ` + "`watchlog import`" + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(formatFlag))
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported export format %q (want json or yaml)", formatFlag)
			}
			return ctx.withStore(cmd, func(s *session) error {
				payload, err := encodeEntries(s.store.List(), format)
				if err != nil {
					return err
				}
				target := strings.TrimSpace(outputFlag)
				if target == "" || target == "-" {
					_, err := cmd.OutOrStdout().Write(payload)
					return err
				}
				if err := fileutil.WriteFileVerified(target, payload, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s\n", s.store.Len(), target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func encodeEntries(entries []watchlist.Entry, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
	}
	return buf.Bytes(), nil
}
