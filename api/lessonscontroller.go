package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lessonbot/storage"
	"lessonbot/types"
)

// RegisterLessonRoutes registers lesson creation and read routes.
func (s *Server) RegisterLessonRoutes(r *gin.Engine) {
	g := r.Group("/api/lessons")
	g.POST("", s.handleCreateLesson)
	g.GET("", s.handleListLessons)
	g.GET("/:id", s.handleGetLesson)
	g.GET("/jobs/:id", s.handleGetJob)
}

type createLessonRequest struct {
	URL    string `json:"url" binding:"required"`
	UserID string `json:"user_id"`
}

// handleCreateLesson starts an asynchronous lesson creation job and
// returns its id immediately. Progress is observed via the jobs route.
func (s *Server) handleCreateLesson(c *gin.Context) {
	var req createLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobID := s.jobs.Begin(req.URL, req.UserID)
	s.log.Info("lesson creation job started", "job_id", jobID, "url", req.URL)

	// The workflow has no cancellation: the request context ends with
	// this handler, so the job runs under its own context.
	go func() {
		result := s.runner.CreateLessonFromURL(context.Background(), req.URL, func(p types.CreationProgress) {
			s.jobs.AppendProgress(jobID, p)
		})
		s.jobs.Finish(jobID, result)
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": "running",
	})
}

// handleGetJob reports the live state of one creation job.
func (s *Server) handleGetJob(c *gin.Context) {
	job, ok := s.jobs.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// handleListLessons returns all lessons without sections.
func (s *Server) handleListLessons(c *gin.Context) {
	lessons, err := s.lessons.List(c.Request.Context())
	if err != nil {
		s.log.Error("list lessons failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list lessons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// handleGetLesson returns one lesson with its ordered sections.
func (s *Server) handleGetLesson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}

	lesson, err := s.lessons.Get(c.Request.Context(), id)
	if err == storage.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}
	if err != nil {
		s.log.Error("get lesson failed", "lesson_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load lesson"})
		return
	}
	c.JSON(http.StatusOK, lesson)
}
