package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newThemeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle|reset]",
		Short:     "Show or change the colour theme",
		Long:      "Show or change the colour theme used by `watchlog browse` and coloured tables.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle", "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *session) error {
				runCtx := commandRunContext(cmd)
				theme := s.theme()

				var dark bool
				var err error
				action := ""
				if len(args) == 1 {
					action = strings.ToLower(strings.TrimSpace(args[0]))
				}
				switch action {
				case "":
					dark, err = theme.Dark(runCtx)
				case "dark", "light":
					dark = action == "dark"
					err = theme.SetDark(runCtx, dark)
				case "toggle":
					dark, err = theme.Toggle(runCtx)
				case "reset":
					err = theme.Reset(runCtx)
				default:
					return fmt.Errorf("unknown theme %q (want dark, light, toggle or reset)", args[0])
				}
				if err != nil {
					return err
				}

				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]any{"darkTheme": dark})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", themeName(dark))
				return nil
			})
		},
	}
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
