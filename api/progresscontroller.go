package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lessonbot/storage"
)

// RegisterProgressRoutes registers section-progress routes.
func (s *Server) RegisterProgressRoutes(r *gin.Engine) {
	g := r.Group("/api/progress")
	g.POST("", s.handleMarkProgress)
	g.GET("/:user_id", s.handleUserProgress)
}

type markProgressRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	SectionID string `json:"section_id" binding:"required"`
}

// handleMarkProgress marks one section completed for a user. Repeats are
// idempotent.
func (s *Server) handleMarkProgress(c *gin.Context) {
	var req markProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sectionID, err := uuid.Parse(req.SectionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section id"})
		return
	}

	row, err := s.progress.MarkSection(c.Request.Context(), req.UserID, sectionID)
	if err == storage.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
		return
	}
	if err != nil {
		s.log.Error("mark progress failed", "user_id", req.UserID, "section_id", sectionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record progress"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// handleUserProgress returns every completed section for a user.
func (s *Server) handleUserProgress(c *gin.Context) {
	rows, err := s.progress.ByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		s.log.Error("list progress failed", "user_id", c.Param("user_id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": rows})
}
