package main

import (
	"github.com/spf13/cobra"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *session) error {
				id, err := resolveEntryID(s.store, args[0])
				if err != nil {
					return err
				}
				entry, _ := s.store.Get(id)
				if ctx.JSONMode() {
					return writeJSON(cmd, entry)
				}
				client, err := ctx.tmdbClient(s.cfg, s.logger)
				if err != nil {
					return err
				}
				printEntry(cmd.OutOrStdout(), entry, posterURLFor(entry, client))
				return nil
			})
		},
	}
}
