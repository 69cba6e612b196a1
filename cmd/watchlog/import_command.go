package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"watchlog/internal/logging"
	"watchlog/internal/watchlist"
)

type importReport struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Invalid  []string `json:"invalid,omitempty"`
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add entries from a JSON export",
		Long: `Add entries from a JSON array as written by ` + "`watchlog export`" + ` (use - for
stdin). Entries whose id is already recorded are skipped, invalid entries are
reported, and the file's newest-first order is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reader io.Reader
			if args[0] == "-" {
				reader = cmd.InOrStdin()
			} else {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open import: %w", err)
				}
				defer file.Close()
				reader = file
			}

			var incoming []watchlist.Entry
			if err := json.NewDecoder(reader).Decode(&incoming); err != nil {
				return fmt.Errorf("decode import: %w", err)
			}

			return ctx.withStore(cmd, func(s *session) error {
				runCtx := commandRunContext(cmd)
				var report importReport
				// Add prepends, so walk oldest first.
				for i := len(incoming) - 1; i >= 0; i-- {
					entry := incoming[i]
					err := s.store.Add(runCtx, entry)
					switch {
					case err == nil:
						report.Imported++
					case errors.Is(err, watchlist.ErrDuplicateID):
						report.Skipped++
					default:
						var verr *watchlist.ValidationError
						if !errors.As(err, &verr) {
							return err
						}
						logging.WarnWithContext(s.logger, "skipping invalid imported entry", "import_invalid_entry",
							logging.String(logging.FieldEntryID, entry.ID),
							logging.Error(err),
							logging.String(logging.FieldImpact, "entry not imported"))
						report.Invalid = append(report.Invalid, fmt.Sprintf("%q: %v", entry.Title, err))
					}
				}

				if ctx.JSONMode() {
					return writeJSON(cmd, report)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d entries, skipped %d already recorded\n", report.Imported, report.Skipped)
				for _, line := range report.Invalid {
					fmt.Fprintf(out, "Invalid: %s\n", line)
				}
				return nil
			})
		},
	}
}
