package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"pomoplan/internal/sync"
)

// Server exposes the sync engine over HTTP.
type Server struct {
	engine *sync.Engine
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates the HTTP server and wires its routes.
func NewServer(engine *sync.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		engine: engine,
		logger: logger,
		router: router,
	}

	router.GET("/healthz", s.handleHealth)
	api := router.Group("/api")
	{
		api.POST("/sync", s.handleSync)
	}

	return s
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	s.logger.Info("sync server listening", "addr", addr)
	return s.router.Run(addr)
}

// Router exposes the handler for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
