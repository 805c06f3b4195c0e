// Package wire provides dependency injection for the kanban application.
// It builds the service graph once per process with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	cliadapter "github.com/example/kanban/internal/adapters/cli"
	"github.com/example/kanban/internal/adapters/filesystem"
	"github.com/example/kanban/internal/adapters/llm"
	"github.com/example/kanban/internal/adapters/postgres"
	"github.com/example/kanban/internal/adapters/sqlite"
	"github.com/example/kanban/internal/adapters/weather"
	"github.com/example/kanban/internal/app"
	"github.com/example/kanban/internal/config"
	"github.com/example/kanban/internal/ctxutil"
	"github.com/example/kanban/internal/db"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// Services is the assembled application: every primary port plus the
// resources that must be released on shutdown.
type Services struct {
	Boards     primary.BoardService
	Columns    primary.ColumnService
	Tasks      primary.TaskService
	Labels     primary.LabelService
	Checklists primary.ChecklistService
	Chat       primary.ChatService
	Sharing    primary.SharingService
	Logs       primary.LogService
	Media      primary.MediaService
	Widgets    primary.WidgetService
	Workspace  primary.WorkspaceService

	// MediaDir is where uploaded images live, served by `kanban serve`.
	MediaDir string

	closers []func() error
}

// repositories is the storage half of the graph, provided by either backend.
type repositories struct {
	boards     secondary.BoardRepository
	columns    secondary.ColumnRepository
	tasks      secondary.TaskRepository
	labels     secondary.LabelRepository
	checklists secondary.ChecklistRepository
	chats      secondary.ChatRepository
	changeLogs secondary.ChangeLogRepository
}

// Build assembles the service graph for settings. Local mode opens the
// SQLite file; cloud mode connects to Postgres and scopes board listings
// to the acting user's memberships.
func Build(ctx context.Context, settings *config.Settings, logger *zap.Logger) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &Services{}

	repos, err := svc.openRepositories(ctx, settings, logger)
	if err != nil {
		return nil, err
	}

	completer, err := llm.New(ctx, llm.Config{
		Provider: settings.LLM.Provider,
		BaseURL:  settings.LLM.BaseURL,
		APIKey:   settings.LLM.APIKey,
		Model:    settings.LLM.Model,
		Timeout:  time.Duration(settings.LLM.TimeoutSeconds) * time.Second,
	}, logger.Named("llm"))
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	if completer == nil {
		logger.Info("no llm api key configured, chat answers with the fallback reply")
	}

	images, err := filesystem.NewImageStore(settings.Media.Dir, settings.Media.PublicBaseURL)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	svc.MediaDir = images.BaseDir()

	logWriter := sqlite.NewLogWriterAdapter(repos.changeLogs)
	stateStore := config.NewStateStore(config.ConfigDir())
	forecasts := weather.NewOpenMeteo(settings.Weather.GeocodeURL, settings.Weather.ForecastURL, logger.Named("weather"))

	svc.Boards = app.NewBoardService(app.BoardServiceDeps{
		BoardRepo:     repos.boards,
		ColumnRepo:    repos.columns,
		TaskRepo:      repos.tasks,
		LabelRepo:     repos.labels,
		ChecklistRepo: repos.checklists,
		StateStore:    stateStore,
		LogWriter:     logWriter,
		Logger:        logger.Named("board"),
		MemberScoped:  settings.Mode == config.ModeCloud,
	})
	svc.Columns = app.NewColumnService(repos.boards, repos.columns, logWriter, logger.Named("column"))
	svc.Tasks = app.NewTaskService(repos.columns, repos.tasks, repos.labels, repos.checklists, logWriter, logger.Named("task"))
	svc.Labels = app.NewLabelService(repos.labels, repos.tasks, logWriter, logger.Named("label"))
	svc.Checklists = app.NewChecklistService(repos.checklists, repos.tasks, logWriter, logger.Named("checklist"))
	svc.Chat = app.NewChatService(app.ChatServiceDeps{
		BoardRepo:     repos.boards,
		ColumnRepo:    repos.columns,
		TaskRepo:      repos.tasks,
		LabelRepo:     repos.labels,
		ChecklistRepo: repos.checklists,
		ChatRepo:      repos.chats,
		Completer:     completer,
		Logger:        logger.Named("chat"),
		SystemPrompt:  settings.LLM.SystemPrompt,
		History:       settings.LLM.History,
	})
	svc.Sharing = app.NewSharingService(repos.boards, logWriter, logger.Named("sharing"))
	svc.Logs = app.NewLogService(repos.changeLogs)
	svc.Media = app.NewMediaService(images, settings.MaxImageBytes(), logger.Named("media"))
	svc.Widgets = app.NewWidgetService(repos.boards, forecasts)
	svc.Workspace = app.NewWorkspaceService(stateStore)

	// the default board always exists in local mode
	if settings.Mode == config.ModeLocal {
		if _, err := svc.Boards.EnsureDefaultBoard(ctxutil.WithUserID(ctx, settings.User.ID)); err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("failed to ensure default board: %w", err)
		}
	}

	return svc, nil
}

func (s *Services) openRepositories(ctx context.Context, settings *config.Settings, logger *zap.Logger) (*repositories, error) {
	switch settings.Mode {
	case config.ModeCloud:
		store, err := postgres.Connect(ctx, settings.Database.DSN)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() error {
			store.Close()
			return nil
		})
		logger.Debug("connected to postgres")
		return &repositories{
			boards:     store.Boards,
			columns:    store.Columns,
			tasks:      store.Tasks,
			labels:     store.Labels,
			checklists: store.Checklists,
			chats:      store.Chats,
			changeLogs: store.ChangeLogs,
		}, nil
	default:
		path := settings.DatabasePath()
		database, err := db.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		s.closers = append(s.closers, database.Close)
		logger.Debug("opened sqlite database", zap.String("path", path))
		return sqliteRepositories(database), nil
	}
}

func sqliteRepositories(database *sql.DB) *repositories {
	return &repositories{
		boards:     sqlite.NewBoardRepository(database),
		columns:    sqlite.NewColumnRepository(database),
		tasks:      sqlite.NewTaskRepository(database),
		labels:     sqlite.NewLabelRepository(database),
		checklists: sqlite.NewChecklistRepository(database),
		chats:      sqlite.NewChatRepository(database),
		changeLogs: sqlite.NewChangeLogRepository(database),
	}
}

// Close releases the storage backend.
func (s *Services) Close() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

var (
	settings *config.Settings
	logger   *zap.Logger
	services *Services
	initErr  error
	once     sync.Once
)

// Configure sets the settings and logger used by the lazily built graph.
// A graph built under earlier settings is closed and rebuilt on next use.
func Configure(s *config.Settings, l *zap.Logger) {
	_ = Close()
	settings = s
	logger = l
	services = nil
	initErr = nil
	once = sync.Once{}
}

// initServices builds the graph. This is called once via sync.Once.
func initServices() {
	if settings == nil {
		settings = config.Default()
	}
	services, initErr = Build(context.Background(), settings, logger)
}

// Get returns the process-wide service graph.
func Get() (*Services, error) {
	once.Do(initServices)
	return services, initErr
}

// Close releases the process-wide graph if it was built.
func Close() error {
	if services == nil {
		return nil
	}
	return services.Close()
}

// BoardAdapter returns a new BoardAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func BoardAdapter() (*cliadapter.BoardAdapter, error) {
	return BoardAdapterWithOutput(os.Stdout)
}

// BoardAdapterWithOutput returns a new BoardAdapter writing to the given output.
func BoardAdapterWithOutput(out io.Writer) (*cliadapter.BoardAdapter, error) {
	svc, err := Get()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewBoardAdapter(svc.Boards, out), nil
}

// TaskAdapterWithOutput returns a new TaskAdapter writing to the given output.
func TaskAdapterWithOutput(out io.Writer) (*cliadapter.TaskAdapter, error) {
	svc, err := Get()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewTaskAdapter(svc.Tasks, out), nil
}

// LabelAdapterWithOutput returns a new LabelAdapter writing to the given output.
func LabelAdapterWithOutput(out io.Writer) (*cliadapter.LabelAdapter, error) {
	svc, err := Get()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewLabelAdapter(svc.Labels, out), nil
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) (*cliadapter.LogAdapter, error) {
	svc, err := Get()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewLogAdapter(svc.Logs, out), nil
}
