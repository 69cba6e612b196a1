package main

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"watchlog/internal/search"
	"watchlog/internal/tmdb"
	"watchlog/internal/watchlist"
)

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Search TMDB interactively and rate what you pick",
		Long: `Open an interactive search. Results update as you type; pick a title with
the arrow keys and Enter, give it a rating from 1 to 5, and press Enter again
to record it. Esc goes back or quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Console logging would draw over the terminal UI; the log file
			// from config still receives everything.
			return ctx.withStoreLogging(cmd, io.Discard, func(s *session) error {
				runCtx := commandRunContext(cmd)
				client, err := ctx.tmdbClient(s.cfg, s.logger)
				if err != nil {
					return err
				}
				dark, err := s.theme().Dark(runCtx)
				if err != nil {
					return err
				}

				var program *tea.Program
				sess := search.NewSession(runCtx, client, s.cfg.DebounceInterval(), func(r search.Results) {
					program.Send(resultsMsg(r))
				}, s.logger)
				defer sess.Close()

				model := newBrowseModel(
					newBrowseStyles(dark),
					sess.Input,
					func(r tmdb.SearchResult) watchlist.Entry {
						return client.ToWatchEntry(r.Record(), r.MediaKind)
					},
					func(d watchlist.Draft) (watchlist.Entry, error) {
						entry, err := watchlist.NewEntry(d, time.Now(), nil)
						if err != nil {
							return watchlist.Entry{}, validationMessage(err)
						}
						if err := s.store.Add(runCtx, entry); err != nil {
							return watchlist.Entry{}, err
						}
						return entry, nil
					},
				)

				program = tea.NewProgram(model,
					tea.WithContext(runCtx),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.OutOrStdout()),
				)
				final, err := program.Run()
				if err != nil {
					return fmt.Errorf("run browse: %w", err)
				}

				if m, ok := final.(browseModel); ok && len(m.added) > 0 {
					out := cmd.OutOrStdout()
					for _, e := range m.added {
						fmt.Fprintf(out, "Added %s [%s] %s\n", titleWithYear(e.Title, e.Year()), e.Type, ratingStars(e.Rating))
					}
				}
				return nil
			})
		},
	}
}
