package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"watchlog/internal/enrich"
)

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich [id...]",
		Short: "Refresh TMDB metadata for linked entries",
		Long: `Refresh poster, release date, overview and genres from TMDB for entries
linked to a TMDB id (all entries when no ids are given). Your title, rating
and notes are never changed. Entries that fail to refresh keep their data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *session) error {
				ids := make([]string, 0, len(args))
				for _, arg := range args {
					id, err := resolveEntryID(s.store, arg)
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
				client, err := ctx.tmdbClient(s.cfg, s.logger)
				if err != nil {
					return err
				}

				refresher := enrich.New(s.store, client, s.cfg.Enrich.Concurrency, s.logger)
				report, err := refresher.Refresh(commandRunContext(cmd), ids...)
				if err != nil {
					return err
				}

				if ctx.JSONMode() {
					type outcome struct {
						ID     string `json:"id"`
						Title  string `json:"title"`
						Status string `json:"status"`
						Error  string `json:"error,omitempty"`
					}
					rows := make([]outcome, 0, len(report.Outcomes))
					for _, o := range report.Outcomes {
						row := outcome{ID: o.ID, Title: o.Title, Status: string(o.Status)}
						if o.Err != nil {
							row.Error = o.Err.Error()
						}
						rows = append(rows, row)
					}
					return writeJSON(cmd, rows)
				}

				out := cmd.OutOrStdout()
				for _, o := range report.Outcomes {
					if o.Status == enrich.StatusFailed {
						fmt.Fprintf(out, "Failed %s (%s): %v\n", o.Title, shortID(o.ID), o.Err)
					}
				}
				fmt.Fprintf(out, "Refreshed %d, skipped %d without a TMDB link, failed %d\n",
					report.Count(enrich.StatusUpdated),
					report.Count(enrich.StatusSkipped),
					report.Count(enrich.StatusFailed))
				return nil
			})
		},
	}
}
