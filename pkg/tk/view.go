// Package tk is a terminal backend: views painted into a term.Buffer, backing
// descriptions for them and a few widgets built on those.
package tk

import (
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/term"
	"arbor.elv.sh/pkg/view"
)

// painter paints the content of a view into rect, which is in buffer
// coordinates and already clipped.
type painter interface {
	paint(b *term.Buffer, rect, clip geom.Rect)
}

// View is a terminal view. Its frame is relative to its parent. Children are
// painted after their parent, in order, clipped to the parent.
type View struct {
	kind     string
	painter  painter
	frame    geom.Rect
	parent   *View
	children []*View
	released bool
}

var _ view.Handle = (*View)(nil)
var _ view.Releaser = (*View)(nil)

// NewScreen returns a root view with nothing to paint of its own.
func NewScreen() *View { return &View{kind: "screen"} }

// Kind returns the kind of the view.
func (v *View) Kind() string { return v.kind }

// Frame returns the frame of the view, relative to its parent.
func (v *View) Frame() geom.Rect { return v.frame }

// Children returns the children of the view.
func (v *View) Children() []*View { return v.children }

// Released returns whether the view has been released.
func (v *View) Released() bool { return v.released }

func (v *View) Insert(child view.Handle, index int) {
	c := child.(*View)
	if c.parent != nil {
		panic("tk: inserting a view that already has a parent")
	}
	c.parent = v
	v.children = append(v.children, nil)
	copy(v.children[index+1:], v.children[index:])
	v.children[index] = c
}

func (v *View) Move(child view.Handle, index int) {
	c := child.(*View)
	v.detach(c)
	c.parent = v
	v.children = append(v.children, nil)
	copy(v.children[index+1:], v.children[index:])
	v.children[index] = c
}

func (v *View) Remove(child view.Handle) {
	v.detach(child.(*View))
}

func (v *View) detach(c *View) {
	for i, x := range v.children {
		if x == c {
			v.children = append(v.children[:i], v.children[i+1:]...)
			c.parent = nil
			return
		}
	}
	panic("tk: view is not a child")
}

func (v *View) SetFrame(frame geom.Rect) { v.frame = frame }

// Release drops the content of the view.
func (v *View) Release() {
	v.released = true
	v.painter = nil
}

// Render paints the tree rooted at v into a new buffer of the given size. The
// frame of v itself is ignored; v covers the whole buffer.
func (v *View) Render(size geom.Size) *term.Buffer {
	b := term.NewBuffer(size)
	v.paintTree(b, b.Bounds(), b.Bounds())
	return b
}

func (v *View) paintTree(b *term.Buffer, rect, clip geom.Rect) {
	if v.painter != nil {
		v.painter.paint(b, rect, clip)
	}
	for _, c := range v.children {
		crect := c.frame.Offset(rect.Origin)
		if cclip := crect.Intersect(clip); !cclip.Empty() {
			c.paintTree(b, crect, cclip)
		}
	}
}
