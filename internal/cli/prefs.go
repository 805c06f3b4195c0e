package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// PrefsCmd returns the prefs command
func PrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change workspace preferences",
		Long: `Workspace preferences are kept per machine: the current board, dark mode and
the stored task search used by task list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			state, err := svc.Workspace.GetState(NewContext(cmd.Context()))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Board:     %s\n", orNone(state.SelectedBoard))
			fmt.Fprintf(out, "Dark mode: %t\n", state.DarkMode)
			fmt.Fprintf(out, "Search:    %s\n", orNone(state.SearchQuery))
			fmt.Fprintf(out, "Tags:      %s\n", orNone(state.TagSearch))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dark-mode",
		Short: "Toggle dark mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			on, err := svc.Workspace.ToggleDarkMode(NewContext(cmd.Context()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Dark mode %s\n", map[bool]string{true: "on", false: "off"}[on])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search [query...]",
		Short: "Store the task title search (no argument clears it)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			if err := svc.Workspace.SetSearchQuery(NewContext(cmd.Context()), query); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Search set to %q\n", query)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "tags [label,label...]",
		Short: "Store the label filter (no argument clears it)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			tags := ""
			if len(args) > 0 {
				tags = args[0]
			}
			if err := svc.Workspace.SetTagSearch(NewContext(cmd.Context()), tags); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Tag filter set to %q\n", tags)
			return nil
		},
	})

	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
