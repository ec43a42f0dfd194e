package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/v2"

	"github.com/eliaswen/goat/core/config"
	"github.com/eliaswen/goat/core/logging"
	"github.com/eliaswen/goat/core/simulation"
)

type Server struct {
	config      *koanf.Koanf
	router      *gin.Engine
	coordinator *simulation.Coordinator
	log         *logging.Logger
}

func NewServer(cfg *koanf.Koanf, log *logging.Logger) (*Server, error) {
	router := gin.Default()

	s := &Server{
		config:      cfg,
		router:      router,
		coordinator: simulation.NewCoordinator(simulation.WithLogger(log)),
		log:         log,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	apiGroup := s.router.Group("/api")
	{
		apiGroup.GET("/health", s.handleHealth)
		apiGroup.GET("/count", s.handleCountExpression)
		apiGroup.GET("/simulate", s.handleSimulate)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	return s.router.Run(s.config.String(config.KeyServerAddress))
}
