package notify

import (
	"arbor.elv.sh/pkg/geom"
)

// FrameDelegate is notified when the frame changes.
type FrameDelegate interface {
	FrameWillChange(o *FrameObserver, info FrameInfo)
}

// FrameDelegateFunc adapts a function to a FrameDelegate.
type FrameDelegateFunc func(o *FrameObserver, info FrameInfo)

func (f FrameDelegateFunc) FrameWillChange(o *FrameObserver, info FrameInfo) { f(o, info) }

// FrameObserver receives frame notifications, and calls its delegate when the
// end frame actually changes. Malformed notifications are dropped.
//
// A FrameObserver is not safe for concurrent use; feed it from the render
// loop.
type FrameObserver struct {
	Delegate FrameDelegate

	latest  *FrameInfo
	dropped int
}

// Receive handles a notification. It returns the parse error if the
// notification was dropped.
func (o *FrameObserver) Receive(n Notification) error {
	info, err := ParseFrameInfo(n)
	if err != nil {
		o.dropped++
		logger.Println("dropping notification:", err)
		return err
	}
	old := o.latest
	o.latest = &info
	if old != nil && old.EndFrame == info.EndFrame {
		return nil
	}
	if o.Delegate != nil {
		o.Delegate.FrameWillChange(o, info)
	}
	return nil
}

// Dropped returns the number of dropped notifications.
func (o *FrameObserver) Dropped() int { return o.dropped }

// Latest returns the last received frame info.
func (o *FrameObserver) Latest() (FrameInfo, bool) {
	if o.latest == nil {
		return FrameInfo{}, false
	}
	return *o.latest, true
}

// Frame is the frame as seen from a view.
type Frame struct {
	Visible bool
	// Rect is in the coordinate space of the view; only meaningful when
	// Visible is true.
	Rect geom.Rect
}

// CurrentFrame returns the last received frame relative to a view whose
// bounds in screen coordinates are given. It returns false if no frame has
// been received or the view is not attached to a screen.
func (o *FrameObserver) CurrentFrame(bounds geom.Rect, attached bool) (Frame, bool) {
	if !attached || o.latest == nil {
		return Frame{}, false
	}
	rect := o.latest.EndFrame.Offset(geom.Point{}.Sub(bounds.Origin))
	local := geom.Rect{Size: bounds.Size}
	if rect.Intersect(local).Empty() {
		return Frame{}, true
	}
	return Frame{Visible: true, Rect: rect}, true
}
