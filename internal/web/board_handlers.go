package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/kanban/internal/ports/primary"
)

type boardRequest struct {
	Name            *string `json:"name"`
	CalendarURL     *string `json:"google_calendar_url"`
	WeatherLocation *string `json:"weather_location"`
}

type importRequest struct {
	Name     string                 `json:"name"`
	Snapshot *primary.BoardSnapshot `json:"snapshot"`
}

func (s *Server) handleListBoards(c *gin.Context) {
	boards, err := s.svc.Boards.ListBoards(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (s *Server) handleCreateBoard(c *gin.Context) {
	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil {
		s.badRequest(c, "name is required")
		return
	}

	board, err := s.svc.Boards.CreateBoard(c.Request.Context(), *req.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (s *Server) handleGetBoard(c *gin.Context) {
	board, err := s.svc.Boards.GetBoard(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// handleUpdateBoard applies the fields present in the body. An empty
// calendar URL or weather location clears the setting.
func (s *Server) handleUpdateBoard(c *gin.Context) {
	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	if req.Name != nil {
		if err := s.svc.Boards.RenameBoard(ctx, id, *req.Name); err != nil {
			s.fail(c, err)
			return
		}
	}
	if req.CalendarURL != nil {
		var err error
		if *req.CalendarURL == "" {
			err = s.svc.Boards.ClearCalendarURL(ctx, id)
		} else {
			err = s.svc.Boards.SetCalendarURL(ctx, id, *req.CalendarURL)
		}
		if err != nil {
			s.fail(c, err)
			return
		}
	}
	if req.WeatherLocation != nil {
		var err error
		if *req.WeatherLocation == "" {
			err = s.svc.Boards.ClearWeatherLocation(ctx, id)
		} else {
			err = s.svc.Boards.SetWeatherLocation(ctx, id, *req.WeatherLocation)
		}
		if err != nil {
			s.fail(c, err)
			return
		}
	}

	board, err := s.svc.Boards.GetBoard(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (s *Server) handleDeleteBoard(c *gin.Context) {
	if err := s.svc.Boards.DeleteBoard(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSelectBoard(c *gin.Context) {
	if err := s.svc.Boards.SelectBoard(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleBoardView(c *gin.Context) {
	view, err := s.svc.Boards.GetBoardView(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleExportBoard(c *gin.Context) {
	snap, err := s.svc.Boards.ExportBoard(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleImportBoard(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Snapshot == nil {
		s.badRequest(c, "snapshot is required")
		return
	}

	board, err := s.svc.Boards.ImportBoard(c.Request.Context(), req.Snapshot, req.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// Columns

type columnRequest struct {
	Title    string `json:"title"`
	Position *int   `json:"position"`
}

func (s *Server) handleListColumns(c *gin.Context) {
	cols, err := s.svc.Columns.ListColumns(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cols)
}

func (s *Server) handleAddColumn(c *gin.Context) {
	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}

	col, err := s.svc.Columns.AddColumn(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, col)
}

func (s *Server) handleRenameColumn(c *gin.Context) {
	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}

	if err := s.svc.Columns.RenameColumn(c.Request.Context(), c.Param("id"), req.Title); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleMoveColumn(c *gin.Context) {
	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Position == nil {
		s.badRequest(c, "position is required")
		return
	}

	if err := s.svc.Columns.MoveColumn(c.Request.Context(), c.Param("id"), *req.Position); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteColumn(c *gin.Context) {
	if err := s.svc.Columns.DeleteColumn(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sharing

func (s *Server) handleCreateInvite(c *gin.Context) {
	invite, err := s.svc.Sharing.CreateInvite(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, invite)
}

func (s *Server) handleJoinBoard(c *gin.Context) {
	boardID, err := s.svc.Sharing.JoinBoard(c.Request.Context(), c.Param("code"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board_id": boardID})
}

func (s *Server) handleListMembers(c *gin.Context) {
	members, err := s.svc.Sharing.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (s *Server) handleRemoveMember(c *gin.Context) {
	if err := s.svc.Sharing.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("user")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Logs

func (s *Server) handleListLogs(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.badRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	logs, err := s.svc.Logs.ListLogs(c.Request.Context(), primary.LogFilters{
		BoardID:    c.Query("board"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		ActorID:    c.Query("actor"),
		Action:     c.Query("action"),
		Limit:      limit,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
