package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove entries",
		Args:    cobra.MinimumNArgs(1),
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

				removed := make([]string, 0, len(ids))
				out := cmd.OutOrStdout()
				for _, id := range ids {
					entry, _ := s.store.Get(id)
					found, err := s.store.Remove(commandRunContext(cmd), id)
					if err != nil {
						return fmt.Errorf("remove %s: %w", id, err)
					}
					if !found {
						continue
					}
					removed = append(removed, id)
					if !ctx.JSONMode() {
						fmt.Fprintf(out, "Removed %s (%s)\n", entry.Title, shortID(id))
					}
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]any{"removed": removed})
				}
				return nil
			})
		},
	}
}
