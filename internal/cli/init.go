package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/kanban/internal/config"
	"github.com/example/kanban/internal/db"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the kanban ledger",
		Long: `Write a default config file (unless one exists), create the database and
the default board with its columns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path := cmd.Flag("config").Value.String()
			if path == "" {
				path = config.ConfigFile()
			}

			written, err := writeDefaultConfig(path)
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintf(out, "✓ Config written to %s\n", path)
			} else {
				fmt.Fprintf(out, "Config already present at %s\n", path)
			}

			if demo {
				if err := seedDemo(out); err != nil {
					return err
				}
			}

			svc, err := services()
			if err != nil {
				return err
			}
			board, err := svc.Boards.EnsureDefaultBoard(NewContext(cmd.Context()))
			if err != nil {
				return fmt.Errorf("failed to create default board: %w", err)
			}

			if globalSettings.Mode == config.ModeLocal {
				fmt.Fprintf(out, "✓ Database ready at %s\n", globalSettings.DatabasePath())
			} else {
				fmt.Fprintln(out, "✓ Connected to the shared database")
			}
			fmt.Fprintf(out, "✓ Default board %s: %s (%s)\n", board.ID, board.Name, strings.Join(models.DefaultColumnTitles, ", "))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  kanban task add \"My first task\"")
			fmt.Fprintln(out, "  kanban board show")
			return nil
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "Load demo boards into an empty local database")
	return cmd
}

// seedDemo fills an empty local database with the demo fixtures.
func seedDemo(out io.Writer) error {
	if globalSettings.Mode != config.ModeLocal {
		return fmt.Errorf("--demo requires local mode")
	}
	database, err := db.Open(globalSettings.DatabasePath())
	if err != nil {
		return err
	}
	defer database.Close()

	seeded, err := db.SeedIfEmpty(database)
	if err != nil {
		return fmt.Errorf("failed to load demo data: %w", err)
	}
	if seeded {
		fmt.Fprintln(out, "✓ Demo boards loaded")
	} else {
		fmt.Fprintln(out, "Database already has boards, demo data skipped")
	}
	return nil
}

// writeDefaultConfig writes the built-in settings to path unless it exists.
func writeDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	config.SetDefaults(v)
	if err := v.SafeWriteConfigAs(path); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current board and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ctx := NewContext(cmd.Context())
			svc, err := services()
			if err != nil {
				return err
			}

			board, err := svc.Boards.CurrentBoard(ctx)
			if err != nil {
				return err
			}
			view, err := svc.Boards.GetBoardView(ctx, board.ID)
			if err != nil {
				return err
			}
			state, err := svc.Workspace.GetState(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Board:    %s %s\n", color.New(color.Bold).Sprint(board.Name), color.New(color.FgHiBlack).Sprintf("(%s)", board.ID))
			for _, col := range view.Columns {
				fmt.Fprintf(out, "  %-16s %d\n", col.Title, len(col.Tasks))
			}
			fmt.Fprintf(out, "Mode:     %s\n", globalSettings.Mode)
			if globalSettings.Mode == config.ModeLocal {
				fmt.Fprintf(out, "Database: %s\n", globalSettings.DatabasePath())
			}
			fmt.Fprintf(out, "User:     %s\n", globalUser)
			assistant := color.New(color.FgYellow).Sprint("fallback only (no api key)")
			if globalSettings.LLM.APIKey != "" {
				assistant = color.New(color.FgHiGreen).Sprint(globalSettings.LLM.Provider)
			}
			fmt.Fprintf(out, "Chat:     %s\n", assistant)
			if state.SearchQuery != "" || state.TagSearch != "" {
				fmt.Fprintf(out, "Search:   %q tags %q\n", state.SearchQuery, state.TagSearch)
			}
			return nil
		},
	}
}

// FocusCmd returns the focus command
func FocusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "focus [board-id]",
		Short: "Select the current board, or show it",
		Long: `Select the board other commands default to.

Examples:
  kanban focus       # show the current board
  kanban focus 2     # switch to board 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ctx := NewContext(cmd.Context())
			svc, err := services()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				board, err := svc.Boards.CurrentBoard(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Current board: %s (%s)\n", board.Name, board.ID)
				return nil
			}

			adapter, err := wire.BoardAdapterWithOutput(out)
			if err != nil {
				return err
			}
			return adapter.Select(ctx, args[0])
		},
	}
}
