package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"watchlog/internal/tmdb"
	"watchlog/internal/watchlist"
)

func newDetailsCommand(ctx *commandContext) *cobra.Command {
	var mediaFlag string

	cmd := &cobra.Command{
		Use:   "details <tmdb-id>",
		Short: "Fetch full TMDB details for a movie or TV show",
		Long: `Fetch full TMDB details. The id is either a search result id such as
tmdb-tv-1399 or a bare number together with --media.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, kind, err := tmdb.ParseID(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(mediaFlag) != "" {
				if kind, err = watchlist.ParseMediaKind(mediaFlag); err != nil {
					return err
				}
			}
			if kind == "" {
				kind = watchlist.MediaMovie
			}

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
			details, err := client.GetDetails(commandRunContext(cmd), id, kind)
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, details)
			}
			out := cmd.OutOrStdout()
			year := ""
			if len(details.ReleaseDate) >= 4 {
				year = details.ReleaseDate[:4]
			}
			fmt.Fprintln(out, titleWithYear(details.Title, year))
			fmt.Fprintf(out, "  TMDB:     tmdb-%s-%d\n", kind, details.ID)
			fmt.Fprintf(out, "  Type:     %s\n", kind.Kind())
			if details.Tagline != "" {
				fmt.Fprintf(out, "  Tagline:  %s\n", details.Tagline)
			}
			if details.ReleaseDate != "" {
				fmt.Fprintf(out, "  Released: %s\n", details.ReleaseDate)
			}
			if details.Runtime > 0 {
				fmt.Fprintf(out, "  Runtime:  %d min\n", details.Runtime)
			}
			if details.NumberOfSeasons > 0 {
				fmt.Fprintf(out, "  Seasons:  %d (%d episodes)\n", details.NumberOfSeasons, details.NumberOfEpisodes)
			}
			if details.Status != "" {
				fmt.Fprintf(out, "  Status:   %s\n", details.Status)
			}
			if len(details.Genres) > 0 {
				fmt.Fprintf(out, "  Genres:   %s\n", strings.Join(details.Genres, ", "))
			}
			if details.VoteAverage > 0 {
				fmt.Fprintf(out, "  Score:    %.1f/10\n", details.VoteAverage)
			}
			fmt.Fprintf(out, "  Poster:   %s\n", client.PosterURL(details.PosterPath))
			if details.Overview != "" {
				fmt.Fprintf(out, "\n%s\n", details.Overview)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mediaFlag, "media", "", "Media type for a bare id: movie or tv (default movie)")
	return cmd
}
