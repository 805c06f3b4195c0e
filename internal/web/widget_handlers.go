package web

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleListChat(c *gin.Context) {
	msgs, err := s.svc.Chat.ListMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (s *Server) handleSendChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}

	exchange, err := s.svc.Chat.SendMessage(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, exchange)
}

func (s *Server) handleClearChat(c *gin.Context) {
	n, err := s.svc.Chat.ClearMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// handleWeather forecasts ?location=, or the board's location for ?board=.
func (s *Server) handleWeather(c *gin.Context) {
	report, err := s.svc.Widgets.Weather(c.Request.Context(), c.Query("board"), c.Query("location"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleProgress(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Widgets.TimeProgress(c.Request.Context()))
}

// handleUploadMedia accepts a multipart "image" file.
func (s *Server) handleUploadMedia(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		s.badRequest(c, "image file is required")
		return
	}
	f, err := header.Open()
	if err != nil {
		s.fail(c, err)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		s.fail(c, err)
		return
	}

	url, err := s.svc.Media.UploadImage(c.Request.Context(), header.Filename, content)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (s *Server) handleResolveMedia(c *gin.Context) {
	ref, err := s.svc.Media.ResolveMedia(c.Request.Context(), c.Query("url"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

// Workspace

type workspaceRequest struct {
	ToggleDarkMode bool    `json:"toggle_dark_mode"`
	SearchQuery    *string `json:"search_query"`
	TagSearch      *string `json:"tag_search"`
}

func (s *Server) handleGetWorkspace(c *gin.Context) {
	state, err := s.svc.Workspace.GetState(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleUpdateWorkspace(c *gin.Context) {
	var req workspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	if req.ToggleDarkMode {
		if _, err := s.svc.Workspace.ToggleDarkMode(ctx); err != nil {
			s.fail(c, err)
			return
		}
	}
	if req.SearchQuery != nil {
		if err := s.svc.Workspace.SetSearchQuery(ctx, *req.SearchQuery); err != nil {
			s.fail(c, err)
			return
		}
	}
	if req.TagSearch != nil {
		if err := s.svc.Workspace.SetTagSearch(ctx, *req.TagSearch); err != nil {
			s.fail(c, err)
			return
		}
	}
	s.handleGetWorkspace(c)
}
