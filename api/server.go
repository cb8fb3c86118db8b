package api

import (
	"github.com/gin-gonic/gin"

	"lessonbot/logger"
	"lessonbot/state"
	"lessonbot/storage"
	"lessonbot/workflow"
)

// Server bundles the handlers' dependencies.
type Server struct {
	runner   *workflow.Runner
	jobs     *state.Manager
	lessons  *storage.LessonStore
	progress *storage.ProgressStore
	log      *logger.Logger
}

// NewServer creates an API server instance.
func NewServer(runner *workflow.Runner, jobs *state.Manager, lessons *storage.LessonStore, progress *storage.ProgressStore, log *logger.Logger) *Server {
	return &Server{
		runner:   runner,
		jobs:     jobs,
		lessons:  lessons,
		progress: progress,
		log:      log.With("component", "api"),
	}
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	s.RegisterLessonRoutes(r)
	s.RegisterProgressRoutes(r)
	s.RegisterHealthRoutes(r)
	return r
}
