package cli

import (
	gocontext "context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cliadapter "github.com/example/kanban/internal/adapters/cli"
	"github.com/example/kanban/internal/adapters/snapshot"
	"github.com/example/kanban/internal/config"
	"github.com/example/kanban/internal/wire"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards (dashboards)",
		Long:  `Create, list, render, export and watch boards.`,
	}

	cmd.AddCommand(boardCreateCmd())
	cmd.AddCommand(boardListCmd())
	cmd.AddCommand(boardShowCmd())
	cmd.AddCommand(boardRenameCmd())
	cmd.AddCommand(boardDeleteCmd())
	cmd.AddCommand(boardCalendarCmd())
	cmd.AddCommand(boardWeatherCmd())
	cmd.AddCommand(boardExportCmd())
	cmd.AddCommand(boardImportCmd())
	cmd.AddCommand(boardWatchCmd())

	return cmd
}

func boardCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a board with the default columns and switch to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Create(NewContext(cmd.Context()), args[0])
			return err
		},
	}
}

func boardListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.List(NewContext(cmd.Context()))
			return err
		},
	}
}

func boardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [board-id]",
		Short: "Render a board (default: current board)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd.Context())
			boardID, err := boardArg(ctx, args)
			if err != nil {
				return err
			}
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Show(ctx, boardID)
			return err
		},
	}
}

func boardRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [board-id] [new-name]",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			if err := svc.Boards.RenameBoard(NewContext(cmd.Context()), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Board %s renamed to %s\n", args[0], args[1])
			return nil
		},
	}
}

func boardDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [board-id]",
		Short: "Delete a board with everything on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Delete(NewContext(cmd.Context()), args[0])
		},
	}
}

func boardCalendarCmd() *cobra.Command {
	var clearFlag bool
	var boardID string

	cmd := &cobra.Command{
		Use:   "calendar [url]",
		Short: "Set or clear the calendar embed URL of a board",
		Args:  cobra.MaximumNArgs(1),
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

			if clearFlag || len(args) == 0 {
				if err := svc.Boards.ClearCalendarURL(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Calendar cleared on board %s\n", id)
				return nil
			}
			if err := svc.Boards.SetCalendarURL(ctx, id, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Calendar set on board %s\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearFlag, "clear", false, "Remove the calendar URL")
	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (default: current board)")
	return cmd
}

func boardWeatherCmd() *cobra.Command {
	var clearFlag bool
	var boardID string

	cmd := &cobra.Command{
		Use:   "weather [location]",
		Short: "Set or clear the weather widget location of a board",
		Args:  cobra.MaximumNArgs(1),
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

			if clearFlag || len(args) == 0 {
				if err := svc.Boards.ClearWeatherLocation(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Weather location cleared on board %s\n", id)
				return nil
			}
			if err := svc.Boards.SetWeatherLocation(ctx, id, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Weather location of board %s set to %s\n", id, args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearFlag, "clear", false, "Remove the weather location")
	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board ID (default: current board)")
	return cmd
}

func boardExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [board-id] [file]",
		Short: "Export a board snapshot as YAML or JSON",
		Long: `Export a board with its columns, tasks, labels and checklists.

The format follows the file extension (.json or .yaml); without a file the
snapshot is written to stdout in --format.

Examples:
  kanban board export 1 backup.yaml
  kanban board export 1 --format json > backup.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			snap, err := svc.Boards.ExportBoard(NewContext(cmd.Context()), args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return snapshot.Encode(cmd.OutOrStdout(), snap, format)
			}
			if err := snapshot.WriteFile(args[1], snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported board %s to %s\n", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", snapshot.FormatYAML, "Output format for stdout (yaml or json)")
	return cmd
}

func boardImportCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Create a new board from a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}
			svc, err := services()
			if err != nil {
				return err
			}
			board, err := svc.Boards.ImportBoard(NewContext(cmd.Context()), snap, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported board %s: %s\n", board.ID, board.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name of the new board (default: the snapshot name)")
	return cmd
}

func boardWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [board-id]",
		Short: "Re-render a board whenever the local database changes",
		Long: `Render a board and redraw it each time another kanban process writes to the
local database. Stop with Ctrl-C. Only available in local mode.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if globalSettings.Mode != config.ModeLocal {
				return errors.New("board watch requires local mode")
			}
			ctx, stop := signal.NotifyContext(NewContext(cmd.Context()), os.Interrupt, syscall.SIGTERM)
			defer stop()

			boardID, err := boardArg(ctx, args)
			if err != nil {
				return err
			}
			adapter, err := wire.BoardAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return watchBoard(ctx, globalSettings.DatabasePath(), adapter, boardID, cmd.OutOrStdout(), globalLogger)
		},
	}
}

// watchBoard renders boardID, then again after each burst of writes to the
// database file or its journal, until ctx is done.
func watchBoard(ctx gocontext.Context, dbPath string, adapter *cliadapter.BoardAdapter, boardID string, out io.Writer, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// SQLite writes go to side files (-wal, -journal), so watch the directory.
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(dbPath), err)
	}
	base := filepath.Base(dbPath)

	render := func() {
		fmt.Fprint(out, "\033[H\033[2J")
		if _, err := adapter.Show(ctx, boardID); err != nil {
			fmt.Fprintf(out, "failed to render board: %v\n", err)
		}
		fmt.Fprintf(out, "watching %s (Ctrl-C to stop)\n", dbPath)
	}
	render()

	debounce := time.NewTimer(0)
	<-debounce.C

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			debounce.Reset(150 * time.Millisecond)
		case <-debounce.C:
			render()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}

// boardArg returns the board ID argument, or the current board.
func boardArg(ctx gocontext.Context, args []string) (string, error) {
	svc, err := services()
	if err != nil {
		return "", err
	}
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	return resolveBoard(ctx, svc, id)
}
