package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"productdisplay-go/bus"
	"productdisplay-go/types"
)

// fakeButtons is a test ButtonSource fed directly by the test body.
type fakeButtons struct {
	ch chan types.ButtonEvent
}

func newFakeButtons() *fakeButtons {
	return &fakeButtons{ch: make(chan types.ButtonEvent, 8)}
}

func (f *fakeButtons) Events() <-chan types.ButtonEvent { return f.ch }
func (f *fakeButtons) Close() error                     { close(f.ch); return nil }

func (f *fakeButtons) press(b types.Button) {
	f.ch <- types.ButtonEvent{Button: b, TS: time.Now()}
}

// testClock is an adjustable time source shared with the controller.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type harness struct {
	disp    *fakeDisplay
	buttons *fakeButtons
	clock   *testClock
	bus     *bus.Bus
	ctrl    *Controller
	cancel  context.CancelFunc
	done    chan error
}

func startController(t *testing.T, products []string) *harness {
	t.Helper()
	h := &harness{
		disp:    newFakeDisplay(),
		buttons: newFakeButtons(),
		clock:   &testClock{now: t0},
		bus:     bus.NewBus(16),
		done:    make(chan error, 1),
	}
	ctrl, err := New(Options{
		Products: products,
		Display:  h.disp,
		Buttons:  h.buttons,
		Conn:     h.bus.NewConnection("controller"),
		Log:      discard(),
		Debounce: 300 * time.Millisecond,
		Loading:  0, // no loading screen wait in tests
		Now:      h.clock.Now,
	})
	if err != nil {
		t.Fatal(err)
	}
	h.ctrl = ctrl

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- ctrl.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-h.done:
		case <-time.After(3 * time.Second):
			t.Error("controller did not stop")
		}
	})
	return h
}

// waitForWrite polls until the display saw the given row content.
func (h *harness) waitForWrite(t *testing.T, row int, text string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		for _, w := range h.disp.snapshot() {
			if w.row == row && w.text == text {
				return
			}
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for row %d = %q; writes: %v", row, text, h.disp.snapshot())
}

func TestControllerInitialRender(t *testing.T) {
	h := startController(t, []string{"A", "B", "C"})
	h.waitForWrite(t, 0, "A")
	h.waitForWrite(t, 1, "⏸00:00")
}

func TestControllerNavigation(t *testing.T) {
	h := startController(t, []string{"A", "B", "C"})
	h.waitForWrite(t, 0, "A")

	h.clock.Advance(time.Second)
	h.buttons.press(types.ButtonDown)
	h.waitForWrite(t, 0, "B")

	h.clock.Advance(time.Second)
	h.buttons.press(types.ButtonUp)
	h.waitForWrite(t, 0, "A")

	// UP from index 0 wraps to the last product.
	h.clock.Advance(time.Second)
	h.buttons.press(types.ButtonUp)
	h.waitForWrite(t, 0, "C")
}

func TestControllerDebouncesRepeats(t *testing.T) {
	h := startController(t, []string{"A", "B", "C"})
	h.waitForWrite(t, 0, "A")

	// Three presses at the same instant: only the first is accepted.
	h.clock.Advance(time.Second)
	h.buttons.press(types.ButtonDown)
	h.buttons.press(types.ButtonDown)
	h.buttons.press(types.ButtonDown)

	h.waitForWrite(t, 0, "B")
	time.Sleep(20 * time.Millisecond)
	for _, w := range h.disp.snapshot() {
		if w.text == "C" {
			t.Fatalf("debounce failed, reached C: %v", h.disp.snapshot())
		}
	}
}

func TestControllerStopwatchToggleAndTick(t *testing.T) {
	h := startController(t, []string{"A"})
	h.waitForWrite(t, 1, "⏸00:00")

	h.clock.Advance(time.Second)
	h.buttons.press(types.ButtonTimer)
	h.waitForWrite(t, 1, "▶00:00")

	// Ticks re-render with the advanced clock.
	tickConn := h.bus.NewConnection("clock")
	h.clock.Advance(65 * time.Second)
	tickConn.Publish(tickConn.NewMessage(bus.T("clock", "tick"), time.Now(), false))
	h.waitForWrite(t, 1, "▶01:05")

	// Stop freezes the value.
	h.buttons.press(types.ButtonTimer)
	h.waitForWrite(t, 1, "⏸01:05")
	h.clock.Advance(30 * time.Second)
	tickConn.Publish(tickConn.NewMessage(bus.T("clock", "tick"), time.Now(), false))
	time.Sleep(20 * time.Millisecond)
	for _, w := range h.disp.snapshot() {
		if w.row == 1 && w.text == "⏸01:35" {
			t.Fatal("stopwatch kept counting while stopped")
		}
	}
}

func TestControllerPublishesState(t *testing.T) {
	h := startController(t, []string{"A", "B"})
	sub := h.bus.NewConnection("test").Subscribe(bus.T("controller", "state"))

	h.clock.Advance(time.Second)
	h.buttons.press(types.ButtonDown)

	deadline := time.After(time.Second)
	for {
		select {
		case m := <-sub.Channel():
			st := m.Payload.(types.ControllerState)
			if st.Index == 1 && st.Product == "B" {
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for state snapshot")
		}
	}
}

func TestControllerShutdownSequence(t *testing.T) {
	h := startController(t, []string{"A"})
	h.waitForWrite(t, 0, "A")

	h.cancel()

	// The shutdown sequence clears the display and writes the farewell
	// before Run returns; Cleanup verifies the actual exit.
	h.waitForWrite(t, 0, "Goodbye!")
	h.waitForWrite(t, 1, "System shutdown")
}

func TestControllerSurvivesClosedButtonSource(t *testing.T) {
	h := startController(t, []string{"A"})
	h.waitForWrite(t, 0, "A")

	h.buttons.Close()

	// Ticks still render after the input source is gone.
	tickConn := h.bus.NewConnection("clock")
	h.clock.Advance(time.Second)
	time.Sleep(10 * time.Millisecond)
	tickConn.Publish(tickConn.NewMessage(bus.T("clock", "tick"), time.Now(), false))
	time.Sleep(20 * time.Millisecond)

	select {
	case err := <-h.done:
		t.Fatalf("controller exited: %v", err)
	default:
	}
}
