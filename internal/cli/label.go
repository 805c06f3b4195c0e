package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/wire"
)

// LabelCmd returns the label command
func LabelCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage board labels",
		Long: `Labels are colored tags scoped to a board. Pinned labels sort first, the
rest by how many tasks use them.`,
	}
	cmd.PersistentFlags().StringVarP(&boardID, "board", "b", "", "Board ID (default: current board)")

	cmd.AddCommand(&cobra.Command{
		Use:   "set [name] [#rrggbb]",
		Short: "Create a label or change its color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd.Context())
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			adapter, err := wire.LabelAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Upsert(ctx, id, args[0], args[1])
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			adapter, err := wire.LabelAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.List(NewContext(cmd.Context()), id)
			return err
		},
	})

	var newColor string
	renameCmd := &cobra.Command{
		Use:   "rename [name] [new-name]",
		Short: "Rename a label everywhere it is used",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			svc, err := services()
			if err != nil {
				return err
			}
			req := primary.UpdateLabelRequest{BoardID: id, Name: args[0], NewName: &args[1]}
			if newColor != "" {
				req.Color = &newColor
			}
			label, err := svc.Labels.UpdateLabel(NewContext(cmd.Context()), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Label %s renamed to %s\n", args[0], label.Name)
			return nil
		},
	}
	renameCmd.Flags().StringVar(&newColor, "color", "", "Also change the color")
	cmd.AddCommand(renameCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a label and remove it from every task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Labels.DeleteLabel(NewContext(cmd.Context()), id, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Label %s deleted\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pin [name]",
		Short: "Toggle whether a label is pinned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			adapter, err := wire.LabelAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.TogglePin(NewContext(cmd.Context()), id, args[0])
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unpin [name]",
		Short: "Unpin a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := boardFlag(cmd, boardID)
			if err != nil {
				return err
			}
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Labels.UnpinLabel(NewContext(cmd.Context()), id, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Label %s unpinned\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "attach [task-id] [name]",
		Short: "Attach a label to a task, creating it if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Labels.AddLabelToTask(NewContext(cmd.Context()), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task %s labelled %s\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "detach [task-id] [name]",
		Short: "Remove a label from a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Labels.RemoveLabelFromTask(NewContext(cmd.Context()), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Label %s removed from task %s\n", args[1], args[0])
			return nil
		},
	})

	return cmd
}

// boardFlag resolves a --board value, defaulting to the current board.
func boardFlag(cmd *cobra.Command, boardID string) (string, error) {
	svc, err := services()
	if err != nil {
		return "", err
	}
	return resolveBoard(NewContext(cmd.Context()), svc, boardID)
}
