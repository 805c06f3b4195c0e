package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ColumnCmd returns the column command
func ColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage the columns of a board",
	}

	cmd.AddCommand(columnAddCmd())
	cmd.AddCommand(columnListCmd())
	cmd.AddCommand(columnRenameCmd())
	cmd.AddCommand(columnMoveCmd())
	cmd.AddCommand(columnDeleteCmd())

	return cmd
}

func columnAddCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Append a column to a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd.Context())
			svc, err := services()
			if err != nil {
				return err
			}
			id, err := resolveBoard(ctx, svc, boardID)
			if err != nil {
				return err
			}
			col, err := svc.Columns.AddColumn(ctx, id, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added column %s: %s (position %d)\n", col.ID, col.Title, col.Position)
			return nil
		},
	}
	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (default: current board)")
	return cmd
}

func columnListCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the columns of a board in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd.Context())
			svc, err := services()
			if err != nil {
				return err
			}
			id, err := resolveBoard(ctx, svc, boardID)
			if err != nil {
				return err
			}
			cols, err := svc.Columns.ListColumns(ctx, id)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "POS\tID\tTITLE")
			fmt.Fprintln(w, "---\t--\t-----")
			for _, col := range cols {
				fmt.Fprintf(w, "%d\t%s\t%s\n", col.Position, col.ID, col.Title)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (default: current board)")
	return cmd
}

func columnRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [column-id] [title]",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Columns.RenameColumn(NewContext(cmd.Context()), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Column %s renamed to %s\n", args[0], args[1])
			return nil
		},
	}
}

func columnMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move [column-id] [position]",
		Short: "Move a column to a zero-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position must be a number: %w", err)
			}
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Columns.MoveColumn(NewContext(cmd.Context()), args[0], pos); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Column %s moved to position %d\n", args[0], pos)
			return nil
		},
	}
}

func columnDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [column-id]",
		Short: "Delete a column and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Columns.DeleteColumn(NewContext(cmd.Context()), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Column %s deleted\n", args[0])
			return nil
		},
	}
}
