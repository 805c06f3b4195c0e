package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/wire"
)

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskShowCmd())
	cmd.AddCommand(taskUpdateCmd())
	cmd.AddCommand(taskMoveCmd())
	cmd.AddCommand(taskReorderCmd())
	cmd.AddCommand(taskDeleteCmd())

	return cmd
}

func taskAddCmd() *cobra.Command {
	var req primary.CreateTaskRequest

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task",
		Long: `Create a task at the end of a column (default: the first column of the
current board).

Examples:
  kanban task add "Buy milk"
  kanban task add "File taxes" --column 2 --date 2026-04-30 --label admin,urgent`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd.Context())
			req.Title = args[0]

			if req.ColumnID == "" {
				svc, err := services()
				if err != nil {
					return err
				}
				boardID, err := resolveBoard(ctx, svc, "")
				if err != nil {
					return err
				}
				cols, err := svc.Columns.ListColumns(ctx, boardID)
				if err != nil {
					return err
				}
				if len(cols) == 0 {
					return fmt.Errorf("board %s has no columns; add one with `kanban column add`", boardID)
				}
				req.ColumnID = cols[0].ID
			}

			adapter, err := wire.TaskAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Create(ctx, req)
			return err
		},
	}
	cmd.Flags().StringVarP(&req.ColumnID, "column", "c", "", "Column ID (default: first column of the current board)")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&req.Date, "date", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.ImageURL, "media", "", "Image or YouTube URL")
	cmd.Flags().StringSliceVarP(&req.Labels, "label", "l", nil, "Labels to attach (comma separated)")
	return cmd
}

func taskListCmd() *cobra.Command {
	var filters primary.TaskFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		Long: `List the tasks of a board. Without --search or --tags the stored
preferences (kanban prefs search / prefs tags) apply.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd.Context())
			svc, err := services()
			if err != nil {
				return err
			}
			filters.BoardID, err = resolveBoard(ctx, svc, filters.BoardID)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("search") && !cmd.Flags().Changed("tags") {
				state, err := svc.Workspace.GetState(ctx)
				if err != nil {
					return err
				}
				filters.Query = state.SearchQuery
				filters.Tags = state.TagSearch
			}

			adapter, err := wire.TaskAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.List(ctx, filters)
			return err
		},
	}
	cmd.Flags().StringVarP(&filters.BoardID, "board", "b", "", "Board ID (default: current board)")
	cmd.Flags().StringVarP(&filters.ColumnID, "column", "c", "", "Only tasks in this column")
	cmd.Flags().StringVarP(&filters.Query, "search", "s", "", "Title substring")
	cmd.Flags().StringVarP(&filters.Tags, "tags", "t", "", "Comma separated labels (a task matches any of them)")
	return cmd
}

func taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show a task with its checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.TaskAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Show(NewContext(cmd.Context()), args[0])
			return err
		},
	}
}

func taskUpdateCmd() *cobra.Command {
	var title, description, date, media string

	cmd := &cobra.Command{
		Use:   "update [task-id]",
		Short: "Update task fields",
		Long: `Update the given fields only. An empty --date or --media clears the field.

Examples:
  kanban task update 4 --title "Call mum"
  kanban task update 4 --date ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := primary.UpdateTaskRequest{TaskID: args[0]}
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("date") {
				req.Date = &date
			}
			if cmd.Flags().Changed("media") {
				req.ImageURL = &media
			}
			if req.Title == nil && req.Description == nil && req.Date == nil && req.ImageURL == nil {
				return fmt.Errorf("nothing to update: pass --title, --description, --date or --media")
			}

			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Tasks.UpdateTask(NewContext(cmd.Context()), req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task %s updated\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&date, "date", "", "Due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&media, "media", "", "Image or YouTube URL (empty clears)")
	return cmd
}

func taskMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move [task-id] [column-id]",
		Short: "Move a task to another column of its board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.TaskAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Move(NewContext(cmd.Context()), args[0], args[1])
		},
	}
}

func taskReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder [task-id] [over-task-id]",
		Short: "Place a task at another task's slot in the same column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.TaskAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Reorder(NewContext(cmd.Context()), args[0], args[1])
			return err
		},
	}
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.TaskAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Delete(NewContext(cmd.Context()), args[0])
		},
	}
}
