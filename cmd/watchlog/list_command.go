package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"watchlog/internal/textutil"
	"watchlog/internal/watchlist"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var typeFlag string
	var searchFlag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := watchlist.ParseFilter(typeFlag)
			if err != nil {
				return err
			}
			return ctx.withStore(cmd, func(s *session) error {
				entries := s.store.Filter(filter)
				if searchFlag != "" {
					matched := entries[:0]
					for _, e := range entries {
						if textutil.ContainsFold(e.Title, searchFlag) {
							matched = append(matched, e)
						}
					}
					entries = matched
				}

				if ctx.JSONMode() {
					return writeJSON(cmd, entries)
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					if s.store.Len() == 0 {
						fmt.Fprintln(out, "Watch list: empty")
					} else {
						fmt.Fprintln(out, "No entries match")
					}
					return nil
				}

				dark, err := s.theme().Dark(commandRunContext(cmd))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Watch list: %d of %d entries\n", len(entries), s.store.Len())
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Title", "Type", "Rating", "Added"},
					entryRows(entries),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
					tableStyle(out, dark),
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "all", "Show only: all, movie or tv")
	cmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Only titles containing this text (case-insensitive)")
	return cmd
}
