// Package web serves the kanban JSON API over gin.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/kanban/internal/ctxutil"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/wire"
)

// UserHeader carries the acting user of a request.
const UserHeader = "X-User-ID"

const shutdownTimeout = 5 * time.Second

// Server is the kanban HTTP server.
type Server struct {
	svc         *wire.Services
	router      *gin.Engine
	logger      *zap.Logger
	defaultUser string
}

// NewServer creates a server over the assembled services. Requests without
// an X-User-ID header act as defaultUser.
func NewServer(svc *wire.Services, defaultUser string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		svc:         svc,
		router:      router,
		logger:      logger,
		defaultUser: defaultUser,
	}

	router.Use(gin.Recovery(), s.requestLogger(), s.actingUser())

	router.GET("/healthz", s.handleHealth)
	if svc.MediaDir != "" {
		router.Static("/media", svc.MediaDir)
	}

	api := router.Group("/api")
	{
		api.GET("/boards", s.handleListBoards)
		api.POST("/boards", s.handleCreateBoard)
		api.POST("/boards/import", s.handleImportBoard)
		api.GET("/boards/:id", s.handleGetBoard)
		api.PATCH("/boards/:id", s.handleUpdateBoard)
		api.DELETE("/boards/:id", s.handleDeleteBoard)
		api.POST("/boards/:id/select", s.handleSelectBoard)
		api.GET("/boards/:id/view", s.handleBoardView)
		api.GET("/boards/:id/export", s.handleExportBoard)

		api.GET("/boards/:id/columns", s.handleListColumns)
		api.POST("/boards/:id/columns", s.handleAddColumn)
		api.PATCH("/columns/:id", s.handleRenameColumn)
		api.DELETE("/columns/:id", s.handleDeleteColumn)
		api.POST("/columns/:id/move", s.handleMoveColumn)

		api.GET("/boards/:id/tasks", s.handleListTasks)
		api.POST("/columns/:id/tasks", s.handleCreateTask)
		api.POST("/tasks/reorder", s.handleReorderTasks)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PATCH("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/:id/move", s.handleMoveTask)

		api.GET("/boards/:id/labels", s.handleListLabels)
		api.PUT("/boards/:id/labels/:name", s.handleUpsertLabel)
		api.PATCH("/boards/:id/labels/:name", s.handleUpdateLabel)
		api.DELETE("/boards/:id/labels/:name", s.handleDeleteLabel)
		api.POST("/boards/:id/labels/:name/pin", s.handlePinLabel)
		api.POST("/boards/:id/labels/:name/unpin", s.handleUnpinLabel)
		api.POST("/tasks/:id/labels/:name", s.handleAttachLabel)
		api.DELETE("/tasks/:id/labels/:name", s.handleDetachLabel)

		api.GET("/tasks/:id/checklist", s.handleGetChecklist)
		api.POST("/tasks/:id/checklist", s.handleAddChecklistItem)
		api.PATCH("/checklist/:id", s.handleUpdateChecklistItem)
		api.DELETE("/checklist/:id", s.handleDeleteChecklistItem)

		api.GET("/boards/:id/chat", s.handleListChat)
		api.POST("/boards/:id/chat", s.handleSendChat)
		api.DELETE("/boards/:id/chat", s.handleClearChat)

		api.POST("/boards/:id/invites", s.handleCreateInvite)
		api.POST("/invites/:code/join", s.handleJoinBoard)
		api.GET("/boards/:id/members", s.handleListMembers)
		api.DELETE("/boards/:id/members/:user", s.handleRemoveMember)

		api.GET("/logs", s.handleListLogs)

		api.GET("/weather", s.handleWeather)
		api.GET("/progress", s.handleProgress)
		api.POST("/media", s.handleUploadMedia)
		api.GET("/media/resolve", s.handleResolveMedia)

		api.GET("/workspace", s.handleGetWorkspace)
		api.PATCH("/workspace", s.handleUpdateWorkspace)
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user", ctxutil.UserFromContext(c.Request.Context())),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Error("request", fields...)
			return
		}
		s.logger.Debug("request", fields...)
	}
}

// actingUser attaches the acting user to the request context.
func (s *Server) actingUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetHeader(UserHeader)
		if user == "" {
			user = s.defaultUser
		}
		if user != "" {
			c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), user))
		}
		c.Next()
	}
}

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
