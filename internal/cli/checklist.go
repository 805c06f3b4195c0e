package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/kanban/internal/adapters/cli"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
)

// ChecklistCmd returns the checklist command
func ChecklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Manage task checklists",
		Long: `Checklists hold items and groups. Checking a group checks everything under
it; an item checks its group once all siblings are done.`,
	}

	var parentID string
	var group bool
	addCmd := &cobra.Command{
		Use:   "add [task-id] [text]",
		Short: "Add an item or group to a task",
		Long: `Examples:
  kanban checklist add 4 "Luggage" --group
  kanban checklist add 4 "Socks" --parent 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			req := primary.AddChecklistItemRequest{TaskID: args[0], ParentID: parentID, Text: args[1], Type: models.ChecklistTypeItem}
			if group {
				req.Type = models.ChecklistTypeGroup
			}
			item, err := svc.Checklists.AddItem(NewContext(cmd.Context()), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s %s: %s\n", item.Type, item.ID, item.Text)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&parentID, "parent", "p", "", "Group to add under")
	addCmd.Flags().BoolVarP(&group, "group", "g", false, "Add a group instead of an item")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(checklistToggleCmd("check", true))
	cmd.AddCommand(checklistToggleCmd("uncheck", false))

	cmd.AddCommand(&cobra.Command{
		Use:   "edit [item-id] [text]",
		Short: "Change the text of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Checklists.UpdateItemText(NewContext(cmd.Context()), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Item %s updated\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [item-id]",
		Short: "Delete an item and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Checklists.DeleteItem(NewContext(cmd.Context()), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Item %s deleted\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [task-id]",
		Short: "Show the checklist of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			items, err := svc.Checklists.GetChecklist(NewContext(cmd.Context()), args[0])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No checklist items.")
				return nil
			}
			cliadapter.RenderChecklist(cmd.OutOrStdout(), items, 0)
			return nil
		},
	})

	return cmd
}

func checklistToggleCmd(use string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [item-id]",
		Short: "Mark an item (or a whole group) as " + map[bool]string{true: "done", false: "not done"}[completed],
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Checklists.SetCompleted(NewContext(cmd.Context()), args[0], completed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Item %s %sed\n", args[0], use)
			return nil
		},
	}
}
