package render

import (
	"context"
	"errors"
	"sync"

	"arbor.elv.sh/pkg/element"
)

// Buffer size of the input channel. The value is chosen for no particular
// reason.
const inputChSize = 128

// ErrStopped is returned by Do when the loop is not running anymore.
var ErrStopped = errors.New("render loop stopped")

// Event is a placeholder type for events.
type Event any

// Loop is the serial main loop. It runs the render callback, event handlers
// and queries on a single goroutine, so that they may manipulate shared state
// without synchronization.
type Loop struct {
	inputCh  chan Event
	handleCb func(Event)
	renderCb func()

	renderCh chan struct{}
	doCh     chan func()

	returnCh chan error
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a new Loop. renderCb is called to run a render pass.
func NewLoop(renderCb func()) *Loop {
	return &Loop{
		inputCh:  make(chan Event, inputChSize),
		handleCb: func(Event) {},
		renderCb: renderCb,

		renderCh: make(chan struct{}, 1),
		doCh:     make(chan func()),

		returnCh: make(chan error, 1),
		stopped:  make(chan struct{}),
	}
}

// NewDriverLoop creates a Loop whose passes render the element returned by
// root with d.
func NewDriverLoop(d *Driver, root func() element.Element) *Loop {
	return NewLoop(func() { d.RenderAndReconcile(root()) })
}

// HandleCb sets the handle callback. It must be called before Run.
func (lp *Loop) HandleCb(cb func(Event)) {
	lp.handleCb = cb
}

// RequestRender requests a render pass. It never blocks. Requests made before
// a pending request has been served are coalesced into one pass.
func (lp *Loop) RequestRender() {
	select {
	case lp.renderCh <- struct{}{}:
	default:
	}
}

// Input provides an input event. A render pass follows the handling of
// events. It may block if the internal event buffer is full.
func (lp *Loop) Input(ev Event) {
	lp.inputCh <- ev
}

// Do runs f on the loop between passes and waits for it to finish. Unlike
// events, f does not cause a render pass; it is meant for read-only queries.
func (lp *Loop) Do(f func()) error {
	done := make(chan struct{})
	select {
	case lp.doCh <- func() { f(); close(done) }:
	case <-lp.stopped:
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-lp.stopped:
		return ErrStopped
	}
}

// Return requests the main loop to return with err. It never blocks. If
// Return has been called before during the current run, it has no effect.
func (lp *Loop) Return(err error) {
	select {
	case lp.returnCh <- err:
	default:
	}
}

// Run runs the loop until Return is called or ctx is done. It renders once
// on start. It must not be called more than once.
func (lp *Loop) Run(ctx context.Context) error {
	defer lp.stopOnce.Do(func() { close(lp.stopped) })
	needRender := true
	for {
		if needRender {
			lp.renderCb()
		}
		needRender = true
		select {
		case event := <-lp.inputCh:
			// Consume all events in the channel to minimize passes.
		consumeAllEvents:
			for {
				lp.handleCb(event)
				select {
				case err := <-lp.returnCh:
					return err
				default:
				}
				select {
				case event = <-lp.inputCh:
					// Continue the loop of consuming all events.
				default:
					break consumeAllEvents
				}
			}
			// Requests made while handling events are served by the pass
			// that follows.
			lp.drainRenderRequest()
		case <-lp.renderCh:
		case f := <-lp.doCh:
			f()
			needRender = false
		case err := <-lp.returnCh:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (lp *Loop) drainRenderRequest() {
	select {
	case <-lp.renderCh:
	default:
	}
}
