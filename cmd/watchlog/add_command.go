package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"watchlog/internal/textutil"
	"watchlog/internal/tmdb"
	"watchlog/internal/watchlist"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		typeFlag   string
		ratingFlag int
		notesFlag  string
		tmdbFlag   string
		mediaFlag  string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Record a movie or TV show",
		Long: `Record a movie or TV show with a 1-5 rating and optional notes.

With --tmdb the entry is linked to a TMDB title: its poster, release date,
overview and genres are copied, the title and type default to TMDB's, and the
entry id becomes tmdb-<kind>-<id>.

Examples:
  watchlog add "Dune" --type movie --rating 4
  watchlog add --tmdb tmdb-movie-438631 --rating 5 --notes "IMAX"
  watchlog add --tmdb 1399 --media tv --rating 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *session) error {
				runCtx := commandRunContext(cmd)
				draft := watchlist.Draft{
					Rating: ratingFlag,
					Notes:  notesFlag,
				}
				if len(args) == 1 {
					draft.Title = args[0]
				}
				if strings.TrimSpace(typeFlag) != "" {
					kind, err := watchlist.ParseKind(typeFlag)
					if err != nil {
						return err
					}
					draft.Type = kind
				}

				var client *tmdb.Client
				if strings.TrimSpace(tmdbFlag) != "" {
					id, kind, err := tmdb.ParseID(tmdbFlag)
					if err != nil {
						return err
					}
					if strings.TrimSpace(mediaFlag) != "" {
						kind, err = watchlist.ParseMediaKind(mediaFlag)
						if err != nil {
							return err
						}
					}
					if kind == "" {
						kind = draft.Type.MediaKind()
					}
					if kind == "" {
						return fmt.Errorf("cannot tell whether TMDB id %d is a movie or a TV show; pass --media movie|tv", id)
					}
					client, err = ctx.tmdbClient(s.cfg, s.logger)
					if err != nil {
						return err
					}
					details, err := client.GetDetails(runCtx, id, kind)
					if err != nil {
						return err
					}
					selection := client.ToWatchEntry(details.Record(), kind)
					draft.Selection = &selection
					if strings.TrimSpace(draft.Title) == "" {
						draft.Title = selection.Title
					}
					if draft.Type == "" {
						draft.Type = selection.Type
					}
				}

				entry, err := watchlist.NewEntry(draft, time.Now(), nil)
				if err != nil {
					return validationMessage(err)
				}
				similar := similarEntries(s.store, entry)
				if err := s.store.Add(runCtx, entry); err != nil {
					if errors.Is(err, watchlist.ErrDuplicateID) {
						return fmt.Errorf("%s is already recorded (id %s); use `watchlog edit` to change it", entry.Title, entry.ID)
					}
					return validationMessage(err)
				}

				if ctx.JSONMode() {
					return writeJSON(cmd, entry)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Added %s [%s] %s\n", titleWithYear(entry.Title, entry.Year()), entry.Type, ratingStars(entry.Rating))
				fmt.Fprintf(out, "ID: %s\n", entry.ID)
				for _, other := range similar {
					fmt.Fprintf(out, "Note: similar entry already recorded: %s (%s)\n", other.Title, shortID(other.ID))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Entry type: movie or tv")
	cmd.Flags().IntVarP(&ratingFlag, "rating", "r", 0, "Rating from 1 to 5")
	cmd.Flags().StringVarP(&notesFlag, "notes", "n", "", "Free-form notes")
	cmd.Flags().StringVar(&tmdbFlag, "tmdb", "", "Link to a TMDB id (123 or tmdb-movie-123)")
	cmd.Flags().StringVar(&mediaFlag, "media", "", "TMDB media type for a bare --tmdb id: movie or tv")
	return cmd
}

func similarEntries(store *watchlist.Store, entry watchlist.Entry) []watchlist.Entry {
	var out []watchlist.Entry
	for _, other := range store.Filter(watchlist.Filter(entry.Type.MediaKind())) {
		if textutil.TitleSimilarity(other.Title, entry.Title) >= textutil.SimilarTitleThreshold {
			out = append(out, other)
		}
	}
	return out
}
