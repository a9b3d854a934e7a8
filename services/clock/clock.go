// Package clock publishes the periodic tick that keeps the elapsed-time
// display advancing between button presses.
package clock

import (
	"context"
	"log/slog"
	"time"

	"productdisplay-go/bus"
)

var (
	topicConfigClock = bus.Topic{"config", "clock"}
	topicTick        = bus.Topic{"clock", "tick"}
)

type Service struct {
	Interval time.Duration
	Log      *slog.Logger
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigClock)
	defer conn.Unsubscribe(cfgSub)

	iv := s.Interval
	if iv <= 0 {
		iv = time.Second
	}
	tick := time.NewTicker(iv)
	defer tick.Stop()

	// loop until context is cancelled, respond to tick and config changes
	for {
		select {
		case <-ctx.Done():
			s.Log.Info("clock service stopping")
			return
		case t := <-tick.C:
			conn.Publish(conn.NewMessage(topicTick, t, false))
		case msg := <-cfgSub.Channel():
			if m, ok := msg.Payload.(map[string]any); ok {
				if v, ok := m["interval_ms"]; ok {
					if ms, ok := asInt(v); ok && ms > 0 {
						tick.Reset(time.Duration(ms) * time.Millisecond)
						s.Log.Info("tick interval updated", "ms", ms)
					}
				}
			}
		}
	}
}

// asInt accepts the numeric types a config document may carry.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// Start launches the tick publisher in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go s.serviceLoop(ctx, conn)
}
