package element

import (
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
	"arbor.elv.sh/pkg/logutil"
	"arbor.elv.sh/pkg/view"
)

var logger = logutil.GetLogger("[element] ")

// Node is an element instance in a built tree. Nodes are immutable once built.
type Node struct {
	// ID identifies the node among its siblings.
	ID ident.Identifier
	// Path identifies the node in the whole tree, starting from the root.
	Path    ident.Path
	Element Element
	// Frame is relative to the parent node.
	Frame geom.Rect
	// Desc is the backing description, nil for transparent elements.
	Desc view.Desc
	// Extent is the bounding rectangle of all descendants, in the node's own
	// coordinate space.
	Extent   geom.Rect
	Children []*Node
}

// Build builds the tree for root, laid out in a rectangle of the given size.
func Build(root Element, size geom.Size, env Env) *Node {
	var f ident.Factory
	id := f.Identifier(root.Type(), ident.NoKey)
	return build(root, id, nil, geom.Rect{Size: size}, env)
}

func build(el Element, id ident.Identifier, parent ident.Path, frame geom.Rect, env Env) *Node {
	n := &Node{ID: id, Path: parent.Append(id), Element: el, Frame: frame}
	env.Path = n.Path
	content := el.Content()
	children := content.Children(env)
	if len(children) > 0 {
		envs := childEnvs(children, env)
		frames := content.frames(frame.Size, children, envs)
		n.Children = make([]*Node, len(children))
		for i, child := range children {
			childPath := envs[i].Path
			childID := childPath.Last()
			if child.Key.Set && childID.Occurrence == 2 {
				logger.Printf("duplicate key %v among children of %v", child.Key, n.Path)
			}
			n.Children[i] = build(child.Element, childID, n.Path, frames[i], env)
		}
	}
	for _, c := range n.Children {
		n.Extent = n.Extent.Union(c.Frame).Union(c.Extent.Offset(c.Frame.Origin))
	}
	bounds := geom.Rect{Size: frame.Size}
	n.Desc = el.Backing(bounds, n.Extent)
	return n
}

// Walk calls f for n and all its descendants, parents before children.
func (n *Node) Walk(f func(*Node)) {
	f(n)
	for _, c := range n.Children {
		c.Walk(f)
	}
}

// Find returns the node with the given path.
func (n *Node) Find(path ident.Path) (*Node, bool) {
	if !path.HasPrefix(n.Path) {
		return nil, false
	}
	if len(path) == len(n.Path) {
		return n, true
	}
	next := path[len(n.Path)]
	for _, c := range n.Children {
		if c.ID == next {
			return c.Find(path)
		}
	}
	return nil, false
}
