package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"watchlog/internal/watchlist"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var (
		titleFlag  string
		typeFlag   string
		ratingFlag int
		notesFlag  string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, type, rating or notes of an entry",
		Long: `Change fields of an existing entry. Only the flags given are changed;
everything else, including the id and the date added, is kept.

Example:
  watchlog edit 0192a7c3 --rating 5 --notes "better the second time"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch watchlist.Patch
			if flags.Changed("title") {
				patch.Title = &titleFlag
			}
			if flags.Changed("type") {
				kind, err := watchlist.ParseKind(typeFlag)
				if err != nil {
					return err
				}
				patch.Type = &kind
			}
			if flags.Changed("rating") {
				patch.Rating = &ratingFlag
			}
			if flags.Changed("notes") {
				patch.Notes = &notesFlag
			}
			if patch.IsEmpty() {
				return errors.New("nothing to change; pass --title, --type, --rating or --notes")
			}

			return ctx.withStore(cmd, func(s *session) error {
				id, err := resolveEntryID(s.store, args[0])
				if err != nil {
					return err
				}
				updated, found, err := s.store.Update(commandRunContext(cmd), id, patch)
				if err != nil {
					return validationMessage(err)
				}
				if !found {
					return fmt.Errorf("no entry with id %s", id)
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, updated)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s [%s] %s\n", updated.Title, updated.Type, ratingStars(updated.Rating))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&titleFlag, "title", "", "New title")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "New type: movie or tv")
	cmd.Flags().IntVarP(&ratingFlag, "rating", "r", 0, "New rating from 1 to 5")
	cmd.Flags().StringVarP(&notesFlag, "notes", "n", "", "New notes (empty string clears them)")
	return cmd
}
