// internal/system/helpers_test.go
package system

import (
	"log/slog"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/logging"
)

func testLogger() *slog.Logger {
	return logging.Discard().Logger
}

func flyingWorld(x, y float64) *entity.World {
	w := entity.NewWorld()
	w.Airplane = &component.Airplane{X: x, Y: y, Stability: 1, LiftCoefficient: 1}
	w.Flying = true
	return w
}

type captured struct {
	events []event.Event
}

func (c *captured) OnEvent(e event.Event) {
	c.events = append(c.events, e)
}

func (c *captured) count(t event.EventType) int {
	n := 0
	for _, e := range c.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
