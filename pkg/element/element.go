// Package element defines the element authoring surface and builds element
// trees.
//
// An Element is an immutable description of a piece of UI. It has a type
// token, content and an optional backing description. Content is one of:
//
//   - a leaf with a measurement rule (Leaf),
//   - a single delegated child that fills the element (Delegate, Proxy),
//   - a single child built from the environment (Builder),
//   - an ordered list of children arranged by a layout rule (Container).
//
// Elements whose Backing method returns nil produce no view of their own.
// They are transparent: their view-producing descendants are attached to the
// nearest ancestor that does produce a view.
package element

import (
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
	"arbor.elv.sh/pkg/view"
)

// Element is implemented by all elements.
type Element interface {
	// Type returns the type token of the element. All values of the same Go
	// type should normally return the same token.
	Type() *ident.Type
	// Content describes the children of the element and how it is measured.
	Content() Content
	// Backing returns the description of the view backing the element, or nil
	// if the element has no view of its own. The bounds are in the element's
	// own coordinate space, and extent is the bounding rectangle of all its
	// descendants in the same space.
	Backing(bounds, extent geom.Rect) view.Desc
}

// Measurer measures a leaf element.
type Measurer interface {
	Measure(c geom.Constraint) geom.Size
}

// MeasureFunc adapts a function to a Measurer.
type MeasureFunc func(c geom.Constraint) geom.Size

func (f MeasureFunc) Measure(c geom.Constraint) geom.Size { return f(c) }

// FixedSize is a Measurer that always returns the same size, clamped to the
// constraint.
type FixedSize geom.Size

func (s FixedSize) Measure(c geom.Constraint) geom.Size { return c.Clamp(geom.Size(s)) }

// Layout arranges the children of a container element.
type Layout interface {
	// Measure returns the size of the container under the constraint.
	Measure(c geom.Constraint, items []Item) geom.Size
	// Layout returns the frame of each item, relative to the container, when
	// the container has the given size. The result must have the same length
	// as items.
	Layout(size geom.Size, items []Item) []geom.Rect
}

// Item is a child as seen by a Layout.
type Item struct {
	// Traits are the layout traits the child was declared with.
	Traits  any
	measure func(geom.Constraint) geom.Size
}

// Measure measures the child.
func (it Item) Measure(c geom.Constraint) geom.Size { return it.measure(c) }

// Child is a child declared in a container.
type Child struct {
	Key     ident.Key
	Traits  any
	Element Element
}

// C declares an unkeyed child without traits.
func C(el Element) Child { return Child{Element: el} }

// Keyed declares a child with an explicit key.
func Keyed(key string, el Element) Child { return Child{Key: ident.K(key), Element: el} }

type contentKind uint8

const (
	leafContent contentKind = iota
	delegateContent
	builderContent
	containerContent
)

// Content describes how an element is measured and what its children are.
// The zero value is a leaf with zero size.
type Content struct {
	kind     contentKind
	measurer Measurer
	child    Element
	builder  func(Env) Element
	layout   Layout
	children []Child
}

// Leaf returns the content of an element with no children.
func Leaf(m Measurer) Content { return Content{kind: leafContent, measurer: m} }

// Delegate returns the content of an element represented entirely by another
// element, which fills it.
func Delegate(child Element) Content { return Content{kind: delegateContent, child: child} }

// Builder returns the content of an element represented by an element built
// from the environment. The function is called every time the element is
// measured or built.
func Builder(f func(Env) Element) Content { return Content{kind: builderContent, builder: f} }

// Container returns the content of an element with an ordered list of
// children. The order is the paint and traversal order.
func Container(layout Layout, children ...Child) Content {
	return Content{kind: containerContent, layout: layout, children: children}
}

// Children returns the declared children, resolving delegates and builders
// against env.
func (c Content) Children(env Env) []Child {
	switch c.kind {
	case delegateContent:
		return []Child{{Element: c.child}}
	case builderContent:
		return []Child{{Element: c.builder(env)}}
	case containerContent:
		return c.children
	}
	return nil
}

// Measure measures content under the constraint. env.Path should be the path
// of the element owning the content.
func (c Content) Measure(con geom.Constraint, env Env) geom.Size {
	switch c.kind {
	case leafContent:
		if c.measurer == nil {
			return geom.Size{}
		}
		return c.measurer.Measure(con)
	case delegateContent, builderContent:
		children := c.Children(env)
		return children[0].Element.Content().Measure(con, childEnvs(children, env)[0])
	case containerContent:
		return c.layout.Measure(con, items(c.children, childEnvs(c.children, env)))
	}
	return geom.Size{}
}

// frames returns the frames of the children when the content has the given
// size.
func (c Content) frames(size geom.Size, children []Child, envs []Env) []geom.Rect {
	switch c.kind {
	case delegateContent, builderContent:
		return []geom.Rect{{Size: size}}
	case containerContent:
		return c.layout.Layout(size, items(children, envs))
	}
	return nil
}

func items(children []Child, envs []Env) []Item {
	its := make([]Item, len(children))
	for i, child := range children {
		content, env := child.Element.Content(), envs[i]
		its[i] = Item{child.Traits, func(c geom.Constraint) geom.Size {
			return content.Measure(c, env)
		}}
	}
	return its
}

// childIDs identifies a sibling group with a fresh factory, so that
// occurrences are independent of anything outside the group.
func childIDs(children []Child) []ident.Identifier {
	var f ident.Factory
	ids := make([]ident.Identifier, len(children))
	for i, child := range children {
		ids[i] = f.Identifier(child.Element.Type(), child.Key)
	}
	return ids
}

func childEnvs(children []Child, env Env) []Env {
	envs := make([]Env, len(children))
	for i, id := range childIDs(children) {
		envs[i] = env
		envs[i].Path = env.Path.Append(id)
	}
	return envs
}

// Measure measures an element under the constraint. env.Path is taken as the
// path of el.
func Measure(el Element, c geom.Constraint, env Env) geom.Size {
	return el.Content().Measure(c, env)
}
