package view

import (
	"fmt"

	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
)

// InvariantError is the panic value used when a patch cannot be applied. It
// always indicates a bug in the code that produced the patches; continuing
// would corrupt the view tree.
type InvariantError struct {
	Patch Patch
	Msg   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("view store invariant violated by %v: %s", e.Patch, e.Msg)
}

// Entry is a retained view.
type Entry struct {
	Path   ident.Path
	Handle Handle
	Desc   Desc
	Frame  geom.Rect

	parent   *Entry
	children []*Entry
}

// Store keeps the retained views, indexed by identity path.
type Store struct {
	root    Handle
	top     []*Entry
	entries map[string]*Entry
}

// NewStore creates a Store whose top-level views are attached to root.
func NewStore(root Handle) *Store {
	return &Store{root: root, entries: make(map[string]*Entry)}
}

// Root returns the root handle.
func (s *Store) Root() Handle { return s.root }

// Len returns the number of retained views.
func (s *Store) Len() int { return len(s.entries) }

// Lookup finds the entry for a path.
func (s *Store) Lookup(path ident.Path) (*Entry, bool) {
	e, ok := s.entries[path.Key()]
	return e, ok
}

// Apply applies patches in order. It panics with an *InvariantError if a patch
// is inconsistent with the current content of the store.
func (s *Store) Apply(patches ...Patch) {
	for _, p := range patches {
		switch p.Op {
		case Create:
			s.create(p)
		case Update:
			s.update(p)
		case Move:
			s.move(p)
		case Destroy:
			s.destroy(p)
		default:
			fail(p, "unknown op")
		}
	}
}

func fail(p Patch, format string, args ...any) {
	panic(&InvariantError{p, fmt.Sprintf(format, args...)})
}

func (s *Store) create(p Patch) {
	key := p.Path.Key()
	if _, exists := s.entries[key]; exists {
		fail(p, "view already exists")
	}
	if p.Desc == nil {
		fail(p, "no description")
	}
	parent, parentHandle, siblings := s.parentOf(p)
	if p.Index < 0 || p.Index > len(*siblings) {
		fail(p, "index out of range [0, %d]", len(*siblings))
	}
	e := &Entry{Path: p.Path, Handle: p.Desc.Create(), Desc: p.Desc, Frame: p.Frame, parent: parent}
	e.Handle.SetFrame(p.Frame)
	parentHandle.Insert(e.Handle, p.Index)
	*siblings = insertAt(*siblings, p.Index, e)
	s.entries[key] = e
}

func (s *Store) update(p Patch) {
	e := s.mustGet(p)
	if p.Desc == nil {
		fail(p, "no description")
	}
	if !SameKind(e.Desc, p.Desc) {
		fail(p, "kind changed from %s to %s", e.Desc.Kind(), p.Desc.Kind())
	}
	if !Equal(e.Desc, p.Desc) {
		p.Desc.Apply(e.Handle)
		e.Desc = p.Desc
	}
	if e.Frame != p.Frame {
		e.Frame = p.Frame
		e.Handle.SetFrame(p.Frame)
	}
}

func (s *Store) move(p Patch) {
	e := s.mustGet(p)
	parent, parentHandle, siblings := s.parentOf(p)
	if e.parent != parent {
		fail(p, "view is not attached to the given parent")
	}
	i := indexOf(*siblings, e)
	rest := removeAt(*siblings, i)
	if p.Index < 0 || p.Index > len(rest) {
		fail(p, "index out of range [0, %d]", len(rest))
	}
	parentHandle.Move(e.Handle, p.Index)
	*siblings = insertAt(rest, p.Index, e)
}

func (s *Store) destroy(p Patch) {
	e := s.mustGet(p)
	if len(e.children) > 0 {
		fail(p, "view still has %d children", len(e.children))
	}
	s.detach(e)
}

// detach removes e from its parent and releases its handle. e must have no
// children.
func (s *Store) detach(e *Entry) {
	parentHandle, siblings := s.root, &s.top
	if e.parent != nil {
		parentHandle, siblings = e.parent.Handle, &e.parent.children
	}
	parentHandle.Remove(e.Handle)
	*siblings = removeAt(*siblings, indexOf(*siblings, e))
	if r, ok := e.Handle.(Releaser); ok {
		r.Release()
	}
	delete(s.entries, e.Path.Key())
}

func (s *Store) mustGet(p Patch) *Entry {
	e, ok := s.entries[p.Path.Key()]
	if !ok {
		fail(p, "no such view")
	}
	return e
}

func (s *Store) parentOf(p Patch) (*Entry, Handle, *[]*Entry) {
	if len(p.Parent) == 0 {
		return nil, s.root, &s.top
	}
	parent, ok := s.entries[p.Parent.Key()]
	if !ok {
		fail(p, "no such parent %v", p.Parent)
	}
	return parent, parent.Handle, &parent.children
}

// Close destroys all retained views, children before parents.
func (s *Store) Close() {
	var destroy func(es []*Entry)
	destroy = func(es []*Entry) {
		for i := len(es) - 1; i >= 0; i-- {
			e := es[i]
			destroy(e.children)
			s.detach(e)
		}
	}
	destroy(s.top)
}

// Info is a read-only snapshot of a retained view and its descendants.
type Info struct {
	Path     string    `json:"path"`
	Kind     string    `json:"kind"`
	Frame    geom.Rect `json:"frame"`
	Children []Info    `json:"children,omitempty"`
}

// Snapshot returns the retained view tree, in the order the views are attached
// to their parents.
func (s *Store) Snapshot() []Info {
	return snapshot(s.top)
}

func snapshot(es []*Entry) []Info {
	if len(es) == 0 {
		return nil
	}
	infos := make([]Info, len(es))
	for i, e := range es {
		infos[i] = Info{e.Path.String(), e.Desc.Kind(), e.Frame, snapshot(e.children)}
	}
	return infos
}

func indexOf(es []*Entry, e *Entry) int {
	for i, x := range es {
		if x == e {
			return i
		}
	}
	panic("entry not attached to its parent")
}

func insertAt(es []*Entry, i int, e *Entry) []*Entry {
	es = append(es, nil)
	copy(es[i+1:], es[i:])
	es[i] = e
	return es
}

func removeAt(es []*Entry, i int) []*Entry {
	copy(es[i:], es[i+1:])
	es[len(es)-1] = nil
	return es[:len(es)-1]
}
