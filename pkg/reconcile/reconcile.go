// Package reconcile computes the patches that turn one view tree into
// another.
//
// Views are matched by identity path within each sibling group. A view whose
// identity persists is updated in place when its description or frame
// changed, and moved only if its order relative to the other surviving
// siblings changed. Views only in the new tree are created, and views only in
// the old tree are destroyed with their whole subtree.
package reconcile

import (
	"arbor.elv.sh/pkg/element"
	"arbor.elv.sh/pkg/ident"
	"arbor.elv.sh/pkg/logutil"
	"arbor.elv.sh/pkg/view"
)

var logger = logutil.GetLogger("[reconcile] ")

// Reconcile returns the patches that turn the views of old into those of new,
// along with the tree to retain for the next reconciliation. The old tree may
// be nil.
//
// The patches are ordered so that they can be applied one by one: within each
// sibling group, destroys come first, children before parents; then each new
// child in declared order is created, updated or moved, followed by the
// patches of its own children.
//
// Reconcile never fails. If new contains two views with the same identity in
// one sibling group, which Build never produces, the later one wins.
func Reconcile(old, new []*element.ViewNode) ([]view.Patch, []*element.ViewNode) {
	var r reconciler
	next := r.group(nil, old, new)
	return r.patches, next
}

type reconciler struct {
	patches []view.Patch
}

func (r *reconciler) emit(p view.Patch) { r.patches = append(r.patches, p) }

// group reconciles one sibling group and returns the new sibling list to
// retain. It returns declared itself when no view in it had to be copied.
func (r *reconciler) group(parent ident.Path, old, declared []*element.ViewNode) []*element.ViewNode {
	siblings, newKeys := dedup(parent, declared)
	changed := len(siblings) != len(declared)

	oldIndex := make(map[string]int, len(old))
	for i, o := range old {
		oldIndex[o.Path.Key()] = i
	}

	// matches[i] is the index of the old view matched with siblings[i], or -1.
	matches := make([]int, len(siblings))
	survives := make([]bool, len(old))
	for i, n := range siblings {
		matches[i] = -1
		if j, ok := oldIndex[newKeys[i]]; ok && view.SameKind(old[j].Desc, n.Desc) {
			matches[i] = j
			survives[j] = true
		}
	}

	// The current order of the parent's children, as it changes while the
	// patches of this group are applied.
	current := make([]string, 0, len(siblings))
	for j, o := range old {
		if survives[j] {
			current = append(current, o.Path.Key())
		} else {
			r.destroy(parent, o)
		}
	}

	stationary := stationary(matches)
	var next []*element.ViewNode
	for i, n := range siblings {
		j := matches[i]
		var kids []*element.ViewNode
		if j >= 0 {
			o := old[j]
			if o.Frame != n.Frame || !view.Equal(o.Desc, n.Desc) {
				r.emit(view.Patch{Op: view.Update, Path: n.Path, Parent: parent, Desc: n.Desc, Frame: n.Frame})
			}
			if !stationary[i] {
				current = remove(current, newKeys[i])
				index := insertionIndex(current, newKeys, i)
				current = insert(current, index, newKeys[i])
				r.emit(view.Patch{Op: view.Move, Path: n.Path, Parent: parent, Index: index})
			}
			kids = r.group(n.Path, o.Children, n.Children)
		} else {
			index := insertionIndex(current, newKeys, i)
			current = insert(current, index, newKeys[i])
			r.emit(view.Patch{Op: view.Create, Path: n.Path, Parent: parent, Desc: n.Desc, Frame: n.Frame, Index: index})
			kids = r.group(n.Path, nil, n.Children)
		}
		if !sameSlice(kids, n.Children) {
			copied := *n
			copied.Children = kids
			n = &copied
			changed = true
		}
		next = append(next, n)
	}
	if !changed {
		return declared
	}
	return next
}

// destroy emits Destroy patches for o and its whole subtree, children first.
func (r *reconciler) destroy(parent ident.Path, o *element.ViewNode) {
	for i := len(o.Children) - 1; i >= 0; i-- {
		r.destroy(o.Path, o.Children[i])
	}
	r.emit(view.Patch{Op: view.Destroy, Path: o.Path, Parent: parent})
}

// dedup drops views whose identity appears again later in the list, and
// returns the remaining views along with their path keys.
func dedup(parent ident.Path, vs []*element.ViewNode) ([]*element.ViewNode, []string) {
	keys := make([]string, len(vs))
	last := make(map[string]int, len(vs))
	for i, v := range vs {
		keys[i] = v.Path.Key()
		last[keys[i]] = i
	}
	if len(last) == len(vs) {
		return vs, keys
	}
	logger.Printf("duplicate identities among children of %v", parent)
	var (
		kept     []*element.ViewNode
		keptKeys []string
	)
	for i, v := range vs {
		if last[keys[i]] == i {
			kept = append(kept, v)
			keptKeys = append(keptKeys, keys[i])
		}
	}
	return kept, keptKeys
}

// insertionIndex returns where the i-th new child should go in current so that
// it directly follows its predecessor in the new order.
func insertionIndex(current, newKeys []string, i int) int {
	if i == 0 {
		return 0
	}
	for k, key := range current {
		if key == newKeys[i-1] {
			return k + 1
		}
	}
	// The predecessor is always placed before its successor is processed.
	panic("predecessor not found")
}

func insert(keys []string, i int, key string) []string {
	keys = append(keys, "")
	copy(keys[i+1:], keys[i:])
	keys[i] = key
	return keys
}

func remove(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

func sameSlice(a, b []*element.ViewNode) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
