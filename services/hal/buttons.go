package hal

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"productdisplay-go/errcode"
	"productdisplay-go/types"
)

// edgePin is the subset of gpio.PinIO the watcher needs; tests inject fakes.
type edgePin interface {
	In(pull gpio.Pull, edge gpio.Edge) error
	WaitForEdge(timeout time.Duration) bool
	Read() gpio.Level
	Halt() error
	Name() string
}

// edgePollTimeout bounds each WaitForEdge call so watchers notice Close.
const edgePollTimeout = 250 * time.Millisecond

const eventQueueLen = 16

// Buttons watches one goroutine per pin for falling edges (pressed pulls
// the line low through the pull-up) and funnels them into one event queue.
// This layer applies only the raw hardware debounce; the controller's
// per-button software debounce sits on top.
type Buttons struct {
	out  chan types.ButtonEvent
	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
	pins []edgePin

	drops uint32 // events dropped because the consumer lagged
}

// OpenButtons claims and configures the three configured BCM pins.
func OpenButtons(cfg types.Config, log *slog.Logger) (*Buttons, error) {
	b := &Buttons{
		out:  make(chan types.ButtonEvent, eventQueueLen),
		stop: make(chan struct{}),
	}
	wanted := []struct {
		button types.Button
		pin    int
	}{
		{types.ButtonUp, cfg.Pins.Up},
		{types.ButtonDown, cfg.Pins.Down},
		{types.ButtonTimer, cfg.Pins.Timer},
	}
	for _, w := range wanted {
		name := fmt.Sprintf("GPIO%d", w.pin)
		p := gpioreg.ByName(name)
		if p == nil {
			_ = b.Close()
			return nil, &errcode.E{C: errcode.HardwareInit, Op: "hal.OpenButtons", Msg: name + " not found"}
		}
		if err := b.watch(w.button, p, cfg.HWDebounce(), log); err != nil {
			_ = b.Close()
			return nil, err
		}
	}
	return b, nil
}

// watch configures one pin and starts its edge loop.
func (b *Buttons) watch(button types.Button, p edgePin, debounce time.Duration, log *slog.Logger) error {
	if err := p.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return &errcode.E{C: errcode.HardwareInit, Op: "hal.OpenButtons", Msg: p.Name(), Err: err}
	}
	b.pins = append(b.pins, p)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		var lastEvent time.Time
		for {
			select {
			case <-b.stop:
				return
			default:
			}
			if !p.WaitForEdge(edgePollTimeout) {
				continue
			}
			now := time.Now()
			if !lastEvent.IsZero() && now.Sub(lastEvent) < debounce {
				continue
			}
			lastEvent = now
			select {
			case b.out <- types.ButtonEvent{Button: button, TS: now}:
			default:
				atomic.AddUint32(&b.drops, 1) // never block the edge loop
			}
		}
	}()
	log.Debug("button watch started", "button", button.String(), "pin", p.Name())
	return nil
}

func (b *Buttons) Events() <-chan types.ButtonEvent { return b.out }

// Drops reports events discarded because the consumer queue was full.
func (b *Buttons) Drops() uint32 { return atomic.LoadUint32(&b.drops) }

// Close stops the watchers, releases the pins, and closes the event
// channel.
func (b *Buttons) Close() error {
	b.once.Do(func() {
		close(b.stop)
		b.release()
		b.wg.Wait()
		close(b.out)
	})
	return nil
}

func (b *Buttons) release() {
	for _, p := range b.pins {
		_ = p.Halt() // unblocks WaitForEdge
	}
	b.pins = nil
}
