// Package api exposes the detection and layout engine over HTTP.
package api

import (
	"time"

	"roof-planner/internal/detect"
	"roof-planner/internal/segment"

	"github.com/gin-gonic/gin"
)

// Server holds the request-scoped engine entry points. Detection and layout
// calls are CPU-bound and run on their own goroutine with a deadline so
// request-handling threads are never blocked past the timeout.
type Server struct {
	generator *detect.Generator
	segment   *segment.Client // optional alternative back-end, may be nil
	timeout   time.Duration
}

// NewServer builds the HTTP surface. segClient may be nil when no remote
// segmentation back-end is configured.
func NewServer(generator *detect.Generator, segClient *segment.Client, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Server{generator: generator, segment: segClient, timeout: timeout}
}

// Router wires the routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.health)

	api := r.Group("/api/roof")
	api.POST("/detect", s.detectRoof)
	api.POST("/layout", s.panelLayout)
	api.POST("/overlay", s.renderOverlay)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
