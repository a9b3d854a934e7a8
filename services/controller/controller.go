package controller

import (
	"context"
	"log/slog"
	"time"

	"productdisplay-go/bus"
	"productdisplay-go/types"
	"productdisplay-go/x/timex"
)

var (
	topicTick  = bus.Topic{"clock", "tick"}
	topicState = bus.Topic{"controller", "state"}
)

const shutdownLinger = time.Second

// Controller owns the navigation, stopwatch, and debounce state and is the
// only writer of the display. Button events and ticks funnel into one
// goroutine (Run's select loop), so the state types need no locking.
type Controller struct {
	nav  *Nav
	sw   *Stopwatch
	deb  *Debouncer
	rend *Renderer

	disp    types.Display
	buttons types.ButtonSource
	conn    *bus.Connection
	log     *slog.Logger

	loading time.Duration
	now     func() time.Time // injectable for tests
}

type Options struct {
	Products []string
	Display  types.Display
	Buttons  types.ButtonSource
	Conn     *bus.Connection
	Log      *slog.Logger

	Debounce time.Duration
	Loading  time.Duration
	Now      func() time.Time
}

func New(o Options) (*Controller, error) {
	nav, err := NewNav(o.Products)
	if err != nil {
		return nil, err
	}
	now := o.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		nav:     nav,
		sw:      &Stopwatch{},
		deb:     NewDebouncer(o.Debounce),
		rend:    NewRenderer(o.Display, o.Log),
		disp:    o.Display,
		buttons: o.Buttons,
		conn:    o.Conn,
		log:     o.Log,
		loading: o.Loading,
		now:     now,
	}, nil
}

// Run drives the event loop until ctx is cancelled. It always performs the
// shutdown sequence (clear, farewell) before returning.
func (c *Controller) Run(ctx context.Context) error {
	tickSub := c.conn.Subscribe(topicTick)
	defer c.conn.Unsubscribe(tickSub)

	if !c.showLoading(ctx) {
		c.shutdown()
		return ctx.Err()
	}
	c.render()

	events := c.buttons.Events()
	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				// Input source gone; keep the display alive on ticks.
				c.log.Warn("button source closed")
				events = nil
				continue
			}
			c.dispatch(func() { c.handleButton(ev) })
		case <-tickSub.Channel():
			c.dispatch(c.render)
		}
	}
}

// dispatch runs one event handler, logging and continuing on any fault so a
// bad event cannot take the display down.
func (c *Controller) dispatch(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("event handler fault", "panic", r)
		}
	}()
	fn()
}

func (c *Controller) handleButton(ev types.ButtonEvent) {
	now := c.now()
	c.conn.Publish(c.conn.NewMessage(bus.T("input", "button", ev.Button.String()), ev, false))
	if !c.deb.Accept(ev.Button, now) {
		return
	}
	switch ev.Button {
	case types.ButtonUp:
		c.nav.Prev()
	case types.ButtonDown:
		c.nav.Next()
	case types.ButtonTimer:
		c.sw.Toggle(now)
	default:
		c.log.Warn("unknown button", "button", ev.Button)
		return
	}
	c.log.Debug("button accepted", "button", ev.Button.String(), "index", c.nav.Index())
	c.render()
	c.publishState(now)
}

func (c *Controller) render() {
	c.rend.Render(c.nav, c.sw, c.now())
}

func (c *Controller) publishState(now time.Time) {
	c.conn.Publish(c.conn.NewMessage(topicState, types.ControllerState{
		Index:    c.nav.Index(),
		Product:  c.nav.Current(),
		Running:  c.sw.Running(),
		ElapsedS: c.sw.Elapsed(now),
		TSms:     timex.NowMs(),
	}, true))
}

// showLoading displays the startup message for the configured duration.
// Returns false when ctx was cancelled during the wait.
func (c *Controller) showLoading(ctx context.Context) bool {
	if err := c.disp.WriteLine(0, "Initializing..."); err != nil {
		c.log.Warn("loading screen write failed", "err", err)
	}
	_ = c.disp.WriteLine(1, "Please wait...")

	if c.loading > 0 {
		t := time.NewTimer(c.loading)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
		}
	}
	if err := c.disp.Clear(); err != nil {
		c.log.Warn("display clear failed", "err", err)
	}
	c.rend.Invalidate()
	return true
}

func (c *Controller) shutdown() {
	c.log.Info("shutting down")
	if err := c.disp.Clear(); err != nil {
		c.log.Warn("display clear failed", "err", err)
	}
	_ = c.disp.WriteLine(0, "Goodbye!")
	_ = c.disp.WriteLine(1, "System shutdown")
	time.Sleep(shutdownLinger)
}
