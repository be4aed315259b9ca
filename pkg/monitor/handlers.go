package monitor

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-arena/pkg/hub"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()

	status.Clients = map[string]int{
		s.recordHub.Name(): s.recordHub.ClientCount(),
		s.frameHub.Name():  s.frameHub.ClientCount(),
	}
	return c.JSON(status)
}

// handleRecords returns the most recent records, oldest first. ?limit=n
// caps the count.
func (s *Server) handleRecords(c *fiber.Ctx) error {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	s.mu.RLock()
	records := s.records.last(limit)
	s.mu.RUnlock()

	return c.JSON(records)
}

func (s *Server) handleRecordsWS(c *websocket.Conn) {
	hub.Attach(s.recordHub, c)
}

func (s *Server) handleFramesWS(c *websocket.Conn) {
	hub.Attach(s.frameHub, c)
}
