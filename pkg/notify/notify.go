// Package notify turns raw platform notifications about the frame of an
// overlay (for example, the visible area of the terminal) into coalesced
// render triggers.
package notify

import (
	"errors"
	"fmt"
	"time"

	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[notify] ")

// Keys of Notification.Info.
const (
	KeyEndFrame          = "frame-end"
	KeyAnimationDuration = "animation-duration"
	KeyAnimationCurve    = "animation-curve"
)

// Names of frame notifications.
const (
	FrameWillChange = "frame-will-change"
	FrameDidChange  = "frame-did-change"
)

// Notification is a raw platform notification.
type Notification struct {
	Name string
	Info map[string]any
}

// Errors wrapped by ParseError.
var (
	ErrMissingInfo              = errors.New("missing info")
	ErrMissingEndFrame          = errors.New("missing end frame")
	ErrMissingAnimationDuration = errors.New("missing animation duration")
	ErrMissingAnimationCurve    = errors.New("missing animation curve")
)

// ParseError is returned when a notification cannot be parsed.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse notification %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FrameInfo is the parsed content of a frame notification.
type FrameInfo struct {
	// EndFrame is in screen coordinates.
	EndFrame          geom.Rect
	AnimationDuration time.Duration
	AnimationCurve    uint
}

// ParseFrameInfo parses a frame notification.
func ParseFrameInfo(n Notification) (FrameInfo, error) {
	fail := func(err error) (FrameInfo, error) {
		return FrameInfo{}, &ParseError{n.Name, err}
	}
	if n.Info == nil {
		return fail(ErrMissingInfo)
	}
	var info FrameInfo
	var ok bool
	if info.EndFrame, ok = n.Info[KeyEndFrame].(geom.Rect); !ok {
		return fail(ErrMissingEndFrame)
	}
	if info.AnimationDuration, ok = parseDuration(n.Info[KeyAnimationDuration]); !ok {
		return fail(ErrMissingAnimationDuration)
	}
	if info.AnimationCurve, ok = parseUint(n.Info[KeyAnimationCurve]); !ok {
		return fail(ErrMissingAnimationCurve)
	}
	return info, nil
}

// Durations are accepted as time.Duration or as seconds.
func parseDuration(v any) (time.Duration, bool) {
	switch v := v.(type) {
	case time.Duration:
		return v, true
	case float64:
		return time.Duration(v * float64(time.Second)), true
	case int:
		return time.Duration(v) * time.Second, true
	}
	return 0, false
}

func parseUint(v any) (uint, bool) {
	switch v := v.(type) {
	case uint:
		return v, true
	case int:
		if v >= 0 {
			return uint(v), true
		}
	case float64:
		if v >= 0 && v == float64(uint(v)) {
			return uint(v), true
		}
	}
	return 0, false
}
