package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/kanban/internal/ports/primary"
)

type moveTaskRequest struct {
	ColumnID string `json:"column_id" binding:"required"`
}

type reorderRequest struct {
	ActiveID string `json:"active_id" binding:"required"`
	OverID   string `json:"over_id" binding:"required"`
}

// handleListTasks filters by the query string, falling back to the stored
// workspace search when neither q nor tags is given.
func (s *Server) handleListTasks(c *gin.Context) {
	ctx := c.Request.Context()
	filters := primary.TaskFilters{
		BoardID:  c.Param("id"),
		ColumnID: c.Query("column"),
		Query:    c.Query("q"),
		Tags:     c.Query("tags"),
	}
	_, hasQ := c.GetQuery("q")
	_, hasTags := c.GetQuery("tags")
	if !hasQ && !hasTags {
		if state, err := s.svc.Workspace.GetState(ctx); err == nil {
			filters.Query = state.SearchQuery
			filters.Tags = state.TagSearch
		}
	}

	tasks, err := s.svc.Tasks.ListTasks(ctx, filters)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req primary.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	req.ColumnID = c.Param("id")

	task, err := s.svc.Tasks.CreateTask(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.svc.Tasks.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req primary.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	req.TaskID = c.Param("id")
	ctx := c.Request.Context()

	if err := s.svc.Tasks.UpdateTask(ctx, req); err != nil {
		s.fail(c, err)
		return
	}
	task, err := s.svc.Tasks.GetTask(ctx, req.TaskID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.svc.Tasks.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleMoveTask(c *gin.Context) {
	var req moveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "column_id is required")
		return
	}

	if err := s.svc.Tasks.MoveTask(c.Request.Context(), c.Param("id"), req.ColumnID); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleReorderTasks(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "active_id and over_id are required")
		return
	}

	result, err := s.svc.Tasks.ReorderTasks(c.Request.Context(), req.ActiveID, req.OverID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Labels

type labelRequest struct {
	Color string `json:"color"`
}

func (s *Server) handleListLabels(c *gin.Context) {
	labels, err := s.svc.Labels.ListLabels(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

func (s *Server) handleUpsertLabel(c *gin.Context) {
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}

	label, err := s.svc.Labels.UpsertLabel(c.Request.Context(), c.Param("id"), c.Param("name"), req.Color)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (s *Server) handleUpdateLabel(c *gin.Context) {
	var req primary.UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	req.BoardID = c.Param("id")
	req.Name = c.Param("name")

	label, err := s.svc.Labels.UpdateLabel(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (s *Server) handleDeleteLabel(c *gin.Context) {
	if err := s.svc.Labels.DeleteLabel(c.Request.Context(), c.Param("id"), c.Param("name")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePinLabel(c *gin.Context) {
	if err := s.svc.Labels.PinLabel(c.Request.Context(), c.Param("id"), c.Param("name")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleUnpinLabel(c *gin.Context) {
	if err := s.svc.Labels.UnpinLabel(c.Request.Context(), c.Param("id"), c.Param("name")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAttachLabel(c *gin.Context) {
	if err := s.svc.Labels.AddLabelToTask(c.Request.Context(), c.Param("id"), c.Param("name")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDetachLabel(c *gin.Context) {
	if err := s.svc.Labels.RemoveLabelFromTask(c.Request.Context(), c.Param("id"), c.Param("name")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checklist

type checklistUpdateRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func (s *Server) handleGetChecklist(c *gin.Context) {
	items, err := s.svc.Checklists.GetChecklist(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleAddChecklistItem(c *gin.Context) {
	var req primary.AddChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	req.TaskID = c.Param("id")

	item, err := s.svc.Checklists.AddItem(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleUpdateChecklistItem(c *gin.Context) {
	var req checklistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	if req.Text != nil {
		if err := s.svc.Checklists.UpdateItemText(ctx, id, *req.Text); err != nil {
			s.fail(c, err)
			return
		}
	}
	if req.Completed != nil {
		if err := s.svc.Checklists.SetCompleted(ctx, id, *req.Completed); err != nil {
			s.fail(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteChecklistItem(c *gin.Context) {
	if err := s.svc.Checklists.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
