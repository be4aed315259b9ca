// Package monitor serves a live view of a running tracking session over
// HTTP and websockets.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-arena/internal/log"
	"github.com/teslashibe/go-arena/pkg/hub"
	"github.com/teslashibe/go-arena/pkg/tracking"
	"github.com/teslashibe/go-arena/pkg/video"
	"gocv.io/x/gocv"
)

// Config controls buffering and frame streaming.
type Config struct {
	// FrameEvery streams one annotated frame out of every FrameEvery frames.
	FrameEvery int
	// RecordBuffer is the number of recent records served by /api/records.
	RecordBuffer int
}

// DefaultConfig streams every third frame and keeps 1000 records.
func DefaultConfig() Config {
	return Config{
		FrameEvery:   3,
		RecordBuffer: 1000,
	}
}

// Status is the body of GET /api/status.
type Status struct {
	Session string            `json:"session"`
	Source  string            `json:"source"`
	State   tracking.State    `json:"state"`
	Frame   int               `json:"frame"`
	Regions []tracking.Region `json:"regions"`
	Latest  []tracking.Record `json:"latest"`
	Clients map[string]int    `json:"clients"`
}

// Server is the monitor HTTP server. It implements tracking.Observer.
type Server struct {
	app    *fiber.App
	config Config
	logger *slog.Logger

	recordHub *hub.Hub
	frameHub  *hub.Hub

	mu      sync.RWMutex
	status  Status
	records *ring
}

var _ tracking.Observer = (*Server)(nil)

// New creates a monitor server with its routes registered.
func New(config Config) *Server {
	defaults := DefaultConfig()
	if config.FrameEvery <= 0 {
		config.FrameEvery = defaults.FrameEvery
	}
	if config.RecordBuffer <= 0 {
		config.RecordBuffer = defaults.RecordBuffer
	}

	s := &Server{
		config:    config,
		logger:    log.Component("monitor"),
		recordHub: hub.New("records"),
		frameHub:  hub.New("frames"),
		records:   newRing(config.RecordBuffer),
		status:    Status{State: tracking.StateUninitialized},
	}

	app := fiber.New(fiber.Config{
		AppName:               "arena monitor",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/status", s.handleStatus)
	api.Get("/records", s.handleRecords)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/records", websocket.New(s.handleRecordsWS))
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on addr until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.recordHub.Run(ctx)
	go s.frameHub.Run(ctx)

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			if err := s.app.Shutdown(); err != nil {
				s.logger.Warn("shutdown failed", "error", err)
			}
		case <-stopped:
		}
	}()

	s.logger.Info("monitor listening", "addr", ln.Addr().String())
	err := s.app.Listener(ln)
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Observe records the snapshot and streams it to connected clients.
func (s *Server) Observe(frame gocv.Mat, snap tracking.Snapshot) {
	s.mu.Lock()
	s.status.Session = snap.Session
	s.status.Source = snap.Source
	s.status.State = snap.State
	s.status.Frame = snap.Frame
	if len(snap.Regions) > 0 {
		s.status.Regions = snap.Regions
	}
	if len(snap.Records) > 0 {
		s.status.Latest = snap.Records
	}
	for _, rec := range snap.Records {
		s.records.push(rec)
	}
	s.mu.Unlock()

	if s.recordHub.ClientCount() > 0 {
		for _, rec := range snap.Records {
			if err := s.recordHub.BroadcastJSON(rec); err != nil {
				s.logger.Warn("encode record", "error", err)
			}
		}
	}

	if frame.Empty() || snap.Frame%s.config.FrameEvery != 0 || s.frameHub.ClientCount() == 0 {
		return
	}
	data, err := video.EncodeJPEG(frame)
	if err != nil {
		s.logger.Warn("encode frame", "frame", snap.Frame, "error", err)
		return
	}
	s.frameHub.BroadcastBinary(data)
}
