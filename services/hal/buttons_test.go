package hal

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"

	"productdisplay-go/types"
)

// fakeEdgePin implements edgePin; edges are fired from the test body.
type fakeEdgePin struct {
	name   string
	edges  chan struct{}
	halted chan struct{}
	pull   gpio.Pull
	edge   gpio.Edge
}

func newFakeEdgePin(name string) *fakeEdgePin {
	return &fakeEdgePin{
		name:   name,
		edges:  make(chan struct{}, 8),
		halted: make(chan struct{}),
	}
}

func (p *fakeEdgePin) In(pull gpio.Pull, edge gpio.Edge) error {
	p.pull = pull
	p.edge = edge
	return nil
}

func (p *fakeEdgePin) WaitForEdge(timeout time.Duration) bool {
	select {
	case <-p.edges:
		return true
	case <-p.halted:
		return false
	case <-time.After(timeout):
		return false
	}
}

func (p *fakeEdgePin) Read() gpio.Level { return gpio.Low }

func (p *fakeEdgePin) Halt() error {
	select {
	case <-p.halted:
	default:
		close(p.halted)
	}
	return nil
}

func (p *fakeEdgePin) Name() string { return p.name }

func (p *fakeEdgePin) fire() { p.edges <- struct{}{} }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestButtons() *Buttons {
	return &Buttons{
		out:  make(chan types.ButtonEvent, eventQueueLen),
		stop: make(chan struct{}),
	}
}

func expectEvent(t *testing.T, b *Buttons, want types.Button) {
	t.Helper()
	select {
	case ev := <-b.Events():
		if ev.Button != want {
			t.Fatalf("got button %v, want %v", ev.Button, want)
		}
		if ev.TS.IsZero() {
			t.Fatal("event timestamp not set")
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for %v event", want)
	}
}

func expectNoEvent(t *testing.T, b *Buttons) {
	t.Helper()
	select {
	case ev := <-b.Events():
		t.Fatalf("unexpected event %v", ev.Button)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestWatchConfiguresPullUpFalling(t *testing.T) {
	b := newTestButtons()
	defer b.Close()

	p := newFakeEdgePin("GPIO17")
	if err := b.watch(types.ButtonUp, p, 0, discard()); err != nil {
		t.Fatal(err)
	}
	if p.pull != gpio.PullUp {
		t.Errorf("pull = %v, want PullUp", p.pull)
	}
	if p.edge != gpio.FallingEdge {
		t.Errorf("edge = %v, want FallingEdge", p.edge)
	}
}

func TestEdgeDelivered(t *testing.T) {
	b := newTestButtons()
	defer b.Close()

	p := newFakeEdgePin("GPIO17")
	if err := b.watch(types.ButtonUp, p, 0, discard()); err != nil {
		t.Fatal(err)
	}

	p.fire()
	expectEvent(t, b, types.ButtonUp)
}

func TestHardwareDebounce(t *testing.T) {
	b := newTestButtons()
	defer b.Close()

	p := newFakeEdgePin("GPIO22")
	if err := b.watch(types.ButtonTimer, p, 100*time.Millisecond, discard()); err != nil {
		t.Fatal(err)
	}

	p.fire()
	expectEvent(t, b, types.ButtonTimer)

	// Bounce inside the window is swallowed.
	p.fire()
	expectNoEvent(t, b)

	time.Sleep(120 * time.Millisecond)
	p.fire()
	expectEvent(t, b, types.ButtonTimer)
}

func TestPinsDoNotInterfere(t *testing.T) {
	b := newTestButtons()
	defer b.Close()

	up := newFakeEdgePin("GPIO17")
	down := newFakeEdgePin("GPIO27")
	if err := b.watch(types.ButtonUp, up, 100*time.Millisecond, discard()); err != nil {
		t.Fatal(err)
	}
	if err := b.watch(types.ButtonDown, down, 100*time.Millisecond, discard()); err != nil {
		t.Fatal(err)
	}

	up.fire()
	expectEvent(t, b, types.ButtonUp)

	// An immediate edge on the other pin passes: debounce is per pin.
	down.fire()
	expectEvent(t, b, types.ButtonDown)
}

func TestCloseStopsWatchersAndClosesChannel(t *testing.T) {
	b := newTestButtons()
	p := newFakeEdgePin("GPIO17")
	if err := b.watch(types.ButtonUp, p, 0, discard()); err != nil {
		t.Fatal(err)
	}

	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case _, ok := <-b.Events():
		if ok {
			t.Fatal("expected closed event channel")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	// Close is idempotent.
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
}
