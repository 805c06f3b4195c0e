// Package cli implements the kanban command tree.
package cli

import (
	gocontext "context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/kanban/internal/config"
	"github.com/example/kanban/internal/ctxutil"
	"github.com/example/kanban/internal/logging"
	"github.com/example/kanban/internal/version"
	"github.com/example/kanban/internal/wire"
)

var (
	globalSettings *config.Settings
	globalLogger   = zap.NewNop()
	globalUser     string
)

// RootCmd returns the kanban root command with every subcommand attached.
func RootCmd() *cobra.Command {
	var configPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "kanban",
		Short:   "kanban - a Kanban board ledger",
		Version: version.String(),
		Long: `kanban keeps Kanban boards (columns, tasks, labels, checklists) in a local
SQLite ledger or a shared Postgres database, with a board assistant, change
log and an HTTP API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(configPath)
			if err != nil {
				return err
			}
			settings, err := config.Load(v)
			if err != nil {
				return err
			}
			level := settings.Log.Level
			if verbose {
				level = "debug"
			}
			logger, err := logging.New(level, settings.Log.Format)
			if err != nil {
				return err
			}

			globalSettings = settings
			globalLogger = logger
			if globalUser == "" {
				globalUser = settings.User.ID
			}
			wire.Configure(settings, logger)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			err := wire.Close()
			_ = globalLogger.Sync()
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.kanban/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalUser, "user", "", "act as this user (default user.id)")

	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(StatusCmd())
	rootCmd.AddCommand(FocusCmd())
	rootCmd.AddCommand(BoardCmd())
	rootCmd.AddCommand(ColumnCmd())
	rootCmd.AddCommand(TaskCmd())
	rootCmd.AddCommand(LabelCmd())
	rootCmd.AddCommand(ChecklistCmd())
	rootCmd.AddCommand(ChatCmd())
	rootCmd.AddCommand(ShareCmd())
	rootCmd.AddCommand(LogCmd())
	rootCmd.AddCommand(MediaCmd())
	rootCmd.AddCommand(WeatherCmd())
	rootCmd.AddCommand(ProgressCmd())
	rootCmd.AddCommand(PrefsCmd())
	rootCmd.AddCommand(ServeCmd())

	return rootCmd
}

// NewContext returns a context carrying the acting user.
func NewContext(parent gocontext.Context) gocontext.Context {
	if parent == nil {
		parent = gocontext.Background()
	}
	if globalUser != "" {
		return ctxutil.WithUserID(parent, globalUser)
	}
	return parent
}

// services returns the process-wide service graph.
func services() (*wire.Services, error) {
	svc, err := wire.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	return svc, nil
}

// resolveBoard returns boardID, or the current board when it is empty.
func resolveBoard(ctx gocontext.Context, svc *wire.Services, boardID string) (string, error) {
	if boardID != "" {
		return boardID, nil
	}
	board, err := svc.Boards.CurrentBoard(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve current board: %w", err)
	}
	return board.ID, nil
}
