package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"watchlog/internal/logging"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search TMDB for movies and TV shows",
		Long: `Search TMDB for movies and TV shows. Up to eight matches are shown; people
are left out. When TMDB cannot be reached the result is simply empty.

Add a match with:
  watchlog add --tmdb tmdb-movie-438631 --rating 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newCLILogger(cfg, cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			client, err := ctx.tmdbClient(cfg, logger)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results := client.SearchMulti(commandRunContext(cmd), query)
			logger.Debug("search finished", logging.String("query", query), logging.Int("results", len(results)))

			if ctx.JSONMode() {
				return writeJSON(cmd, results)
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No movies or TV shows found for %q\n", query)
				return nil
			}
			rows := make([][]string, 0, len(results))
			for i, r := range results {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					fmt.Sprintf("tmdb-%s-%d", r.MediaKind, r.ID),
					r.Title,
					string(r.MediaKind.Kind()),
					r.Year(),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "TMDB ID", "Title", "Type", "Year"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				table.StyleRounded,
			))
			return nil
		},
	}
}
