// Package viewtest provides an in-memory platform for testing code that
// drives a view.Store.
package viewtest

import (
	"fmt"
	"strings"

	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/view"
)

// Log records the operations performed on Views sharing it.
type Log struct {
	Ops []string
}

func (l *Log) record(format string, args ...any) {
	if l != nil {
		l.Ops = append(l.Ops, fmt.Sprintf(format, args...))
	}
}

// Reset clears the recorded operations.
func (l *Log) Reset() { l.Ops = nil }

// View is a fake platform view.
type View struct {
	Name     string
	Kind     string
	Text     string
	Frame    geom.Rect
	Children []*View
	Released bool

	log *Log
}

// NewRoot creates a root view recording into log.
func NewRoot(log *Log) *View { return &View{Name: "root", Kind: "root", log: log} }

func (v *View) Insert(child view.Handle, index int) {
	c := child.(*View)
	if v.indexOf(c) >= 0 {
		panic("inserting a view that is already attached")
	}
	v.Children = append(v.Children, nil)
	copy(v.Children[index+1:], v.Children[index:])
	v.Children[index] = c
	v.log.record("insert %s into %s @%d", c.Name, v.Name, index)
}

func (v *View) Move(child view.Handle, index int) {
	c := child.(*View)
	i := v.indexOf(c)
	if i < 0 {
		panic("moving a view that is not attached")
	}
	v.Children = append(v.Children[:i], v.Children[i+1:]...)
	v.Children = append(v.Children, nil)
	copy(v.Children[index+1:], v.Children[index:])
	v.Children[index] = c
	v.log.record("move %s in %s @%d", c.Name, v.Name, index)
}

func (v *View) Remove(child view.Handle) {
	c := child.(*View)
	i := v.indexOf(c)
	if i < 0 {
		panic("removing a view that is not attached")
	}
	v.Children = append(v.Children[:i], v.Children[i+1:]...)
	v.log.record("remove %s from %s", c.Name, v.Name)
}

func (v *View) SetFrame(frame geom.Rect) {
	v.Frame = frame
	v.log.record("frame %s %v", v.Name, frame)
}

func (v *View) Release() {
	if v.Released {
		panic("view released twice")
	}
	v.Released = true
	v.log.record("release %s", v.Name)
}

func (v *View) indexOf(c *View) int {
	for i, x := range v.Children {
		if x == c {
			return i
		}
	}
	return -1
}

// Names returns the names of the children.
func (v *View) Names() []string {
	names := make([]string, len(v.Children))
	for i, c := range v.Children {
		names[i] = c.Name
	}
	return names
}

// Dump returns an indented outline of the view tree rooted at v.
func (v *View) Dump() string {
	var sb strings.Builder
	var dump func(v *View, depth int)
	dump = func(v *View, depth int) {
		fmt.Fprintf(&sb, "%s%s", strings.Repeat("  ", depth), v.Name)
		if v.Text != "" {
			fmt.Fprintf(&sb, " %q", v.Text)
		}
		sb.WriteString("\n")
		for _, c := range v.Children {
			dump(c, depth+1)
		}
	}
	dump(v, 0)
	return sb.String()
}

// Desc describes a View. Name becomes the name of the created View; it is used
// to tell views apart in logs and has no other meaning.
type Desc struct {
	Name     string
	ViewKind string
	Text     string

	Log *Log
}

// D is a shorthand for a Desc with the default kind.
func D(name, text string, log *Log) Desc { return Desc{name, "", text, log} }

func (d Desc) Kind() string {
	if d.ViewKind == "" {
		return "test"
	}
	return d.ViewKind
}

func (d Desc) Create() view.Handle {
	d.Log.record("create %s", d.Name)
	return &View{Name: d.Name, Kind: d.Kind(), Text: d.Text, log: d.Log}
}

func (d Desc) Apply(h view.Handle) {
	v := h.(*View)
	v.Text = d.Text
	d.Log.record("apply %s %q", v.Name, d.Text)
}
