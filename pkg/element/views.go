package element

import (
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
	"arbor.elv.sh/pkg/view"
)

// ViewNode is a node of the view tree: the element tree with transparent
// elements flattened away.
type ViewNode struct {
	// Path is the path of the element producing the view.
	Path ident.Path
	Desc view.Desc
	// Frame is relative to the nearest ancestor view.
	Frame    geom.Rect
	Children []*ViewNode
}

// Views returns the top-level views of the tree. The result contains n itself
// if it has a backing description, and otherwise the top-level views of its
// children, in order.
func (n *Node) Views() []*ViewNode {
	return n.views(nil, geom.Point{})
}

// views returns the view nodes for n, appended to vs. origin is the position
// of n's parent relative to the nearest ancestor view.
func (n *Node) views(vs []*ViewNode, origin geom.Point) []*ViewNode {
	pos := origin.Add(n.Frame.Origin)
	if n.Desc == nil {
		for _, c := range n.Children {
			vs = c.views(vs, pos)
		}
		return vs
	}
	vn := &ViewNode{Path: n.Path, Desc: n.Desc, Frame: geom.Rect{Origin: pos, Size: n.Frame.Size}}
	for _, c := range n.Children {
		vn.Children = c.views(vn.Children, geom.Point{})
	}
	return append(vs, vn)
}

// WalkViews calls f for every view node in vs and their descendants, parents
// before children. The parent argument is nil for top-level views.
func WalkViews(vs []*ViewNode, f func(vn, parent *ViewNode)) {
	var walk func(vs []*ViewNode, parent *ViewNode)
	walk = func(vs []*ViewNode, parent *ViewNode) {
		for _, vn := range vs {
			f(vn, parent)
			walk(vn.Children, vn)
		}
	}
	walk(vs, nil)
}
