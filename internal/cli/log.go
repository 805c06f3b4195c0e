package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect the change log",
		Long: `Every create, update and delete on a board is recorded with the acting user.
Entries outlive the boards they describe until pruned.`,
	}

	cmd.AddCommand(logTailCmd())
	cmd.AddCommand(logShowCmd())
	cmd.AddCommand(logPruneCmd())

	return cmd
}

func logTailCmd() *cobra.Command {
	var filters primary.LogFilters
	var all bool

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show the most recent change log entries",
		Long: `Show recent entries of the current board, newest first.

Examples:
  kanban log tail
  kanban log tail --entity-type task --action delete
  kanban log tail --all --actor alice -n 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd.Context())
			if !all {
				svc, err := services()
				if err != nil {
					return err
				}
				filters.BoardID, err = resolveBoard(ctx, svc, filters.BoardID)
				if err != nil {
					return err
				}
			}
			adapter, err := wire.LogAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.List(ctx, filters)
			return err
		},
	}
	cmd.Flags().StringVarP(&filters.BoardID, "board", "b", "", "Board ID (default: current board)")
	cmd.Flags().BoolVar(&all, "all", false, "Entries of every board")
	cmd.Flags().StringVar(&filters.EntityType, "entity-type", "", "Filter by entity type (board, column, task, label, checklist_item, member)")
	cmd.Flags().StringVar(&filters.EntityID, "entity-id", "", "Filter by entity ID")
	cmd.Flags().StringVar(&filters.ActorID, "actor", "", "Filter by acting user")
	cmd.Flags().StringVar(&filters.Action, "action", "", "Filter by action (create, update, delete)")
	cmd.Flags().IntVarP(&filters.Limit, "limit", "n", 20, "Maximum number of entries")
	return cmd
}

func logShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [log-id]",
		Short: "Show one change log entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			entry, err := svc.Logs.GetLog(NewContext(cmd.Context()), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entry %s\n", entry.ID)
			fmt.Fprintf(out, "  Time:   %s\n", entry.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "  Board:  %s\n", entry.BoardID)
			if entry.ActorID != "" {
				fmt.Fprintf(out, "  Actor:  %s\n", entry.ActorID)
			}
			fmt.Fprintf(out, "  Action: %s %s %s\n", entry.Action, entry.EntityType, entry.EntityID)
			if entry.Details != "" {
				fmt.Fprintf(out, "  Details: %s\n", entry.Details)
			}
			return nil
		},
	}
}

func logPruneCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete change log entries older than --days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			svc, err := services()
			if err != nil {
				return err
			}
			n, err := svc.Logs.PruneLogs(NewContext(cmd.Context()), days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Pruned %d entries older than %d days\n", n, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "Age threshold in days")
	return cmd
}
