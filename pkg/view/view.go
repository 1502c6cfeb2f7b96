// Package view defines the boundary to the platform's views and implements
// the retained view store.
//
// The store is the only owner of live view handles. It is mutated exclusively
// by applying patches, in the order a reconciler emitted them, and must only
// be used from the render thread.
package view

import (
	"reflect"

	"arbor.elv.sh/pkg/geom"
)

// Handle is a live platform view.
type Handle interface {
	// Insert attaches child at the given index among the receiver's children.
	Insert(child Handle, index int)
	// Move repositions an attached child. The index is interpreted after the
	// child has been taken out of the list of children.
	Move(child Handle, index int)
	// Remove detaches child.
	Remove(child Handle)
	// SetFrame positions the view relative to its parent.
	SetFrame(frame geom.Rect)
}

// Releaser is an optional interface for Handles that hold resources. Release
// is called once, after the handle has been detached for good.
type Releaser interface {
	Release()
}

// Desc is a backing description: it describes how to create and update a view
// for an element.
type Desc interface {
	// Kind names the class of view the description creates. A view can only
	// be updated in place with a description of the same kind.
	Kind() string
	// Create creates a new view.
	Create() Handle
	// Apply updates an existing view, created from a description of the same
	// kind, to match the description.
	Apply(h Handle)
}

// Equaler may be implemented by Desc types that cannot be compared with
// reflect.DeepEqual, for example because they hold functions.
type Equaler interface {
	Equal(other Desc) bool
}

// Equal returns whether two descriptions are equal by value. It uses the Equal
// method when x implements Equaler, and reflect.DeepEqual otherwise.
func Equal(x, y Desc) bool {
	switch x := x.(type) {
	case nil:
		return y == nil
	case Equaler:
		return x.Equal(y)
	}
	return reflect.DeepEqual(x, y)
}

// SameKind returns whether two non-nil descriptions create the same kind of
// view.
func SameKind(x, y Desc) bool {
	return x.Kind() == y.Kind()
}
