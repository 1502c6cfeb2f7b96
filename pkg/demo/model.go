// Package demo implements the list editor run by the arbor program. It
// exercises keyed reconciliation: items keep their views and their state when
// they are reordered, and lose both when they are removed.
package demo

import (
	"fmt"
	"strconv"

	"arbor.elv.sh/pkg/element"
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
	"arbor.elv.sh/pkg/store/storedefs"
	"arbor.elv.sh/pkg/term"
	"arbor.elv.sh/pkg/tk"
	"arbor.elv.sh/pkg/view"
)

var itemType = ident.NewType("Item")

// Model is the state of the list editor. It is only accessed from the render
// loop.
type Model struct {
	Items    []string
	Selected int
	Status   string

	state storedefs.StateStore
	added int
}

// NewModel creates a Model with the given items. Activation counts are kept
// in state, which may be nil.
func NewModel(items []string, state storedefs.StateStore) *Model {
	return &Model{Items: append([]string(nil), items...), state: state}
}

// Root returns the root element for the current state.
func (m *Model) Root() element.Element {
	col := make(tk.Column, 0, len(m.Items)+1)
	for i, item := range m.Items {
		col = append(col, element.Keyed(item, itemView{item, i == m.Selected, m.state}))
	}
	col = append(col, element.C(tk.Label{Text: m.Status, Style: "2"}))
	return tk.Panel{Title: fmt.Sprintf("arbor: %d items", len(m.Items)), Child: col}
}

// HandleKey updates the model for a key press. It returns true when the key
// asks to quit. tree is the tree of the last pass and is used to find the
// state of the selected item.
func (m *Model) HandleKey(k term.Key, tree *element.Node) (quit bool) {
	m.Status = ""
	switch k {
	case term.Up, term.Key{Rune: 'k'}:
		if m.Selected > 0 {
			m.Selected--
		}
	case term.Down, term.Key{Rune: 'j'}:
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case term.Key{Rune: 'a'}:
		m.add()
	case term.Key{Rune: 'd'}, term.Backspace:
		m.remove()
	case term.Key{Rune: 'r'}:
		for i, j := 0, len(m.Items)-1; i < j; i, j = i+1, j-1 {
			m.Items[i], m.Items[j] = m.Items[j], m.Items[i]
		}
		m.Selected = max(len(m.Items)-1-m.Selected, 0)
	case term.Key{Rune: 's'}:
		if n := len(m.Items); n > 1 {
			last := m.Items[n-1]
			copy(m.Items[1:], m.Items[:n-1])
			m.Items[0] = last
			m.Selected = (m.Selected + 1) % n
		}
	case term.Enter:
		m.activate(tree)
	case term.Key{Rune: 'q'}, term.Escape, term.Key{Rune: 3}:
		return true
	default:
		m.Status = "unbound key " + k.String()
	}
	return false
}

func (m *Model) add() {
	for {
		m.added++
		name := "item " + strconv.Itoa(m.added)
		if !m.has(name) {
			m.Items = append(m.Items, name)
			m.Selected = len(m.Items) - 1
			return
		}
	}
}

func (m *Model) has(name string) bool {
	for _, item := range m.Items {
		if item == name {
			return true
		}
	}
	return false
}

func (m *Model) remove() {
	if len(m.Items) == 0 {
		return
	}
	m.Items = append(m.Items[:m.Selected], m.Items[m.Selected+1:]...)
	if m.Selected >= len(m.Items) {
		m.Selected = max(len(m.Items)-1, 0)
	}
}

func (m *Model) activate(tree *element.Node) {
	if m.state == nil || tree == nil || len(m.Items) == 0 {
		return
	}
	name := m.Items[m.Selected]
	var path ident.Path
	tree.Walk(func(n *element.Node) {
		if v, ok := n.Element.(itemView); ok && v.name == name {
			path = n.Path
		}
	})
	if path == nil {
		m.Status = "not rendered yet: " + name
		return
	}
	key := path.Key()
	count := loadCount(m.state, key) + 1
	if err := m.state.SetState(key, []byte(strconv.Itoa(count))); err != nil {
		m.Status = "cannot save state: " + err.Error()
	}
}

// itemView shows an item and how many times it has been activated. The count
// is kept in the state store under the item's identity path.
type itemView struct {
	name     string
	selected bool
	state    storedefs.StateStore
}

func (itemView) Type() *ident.Type { return itemType }

func (v itemView) Content() element.Content {
	return element.Builder(func(env element.Env) element.Element {
		text, style := "  "+v.name, ""
		if v.selected {
			text, style = "> "+v.name, "7"
		}
		if v.state != nil {
			if n := loadCount(v.state, env.Path.Key()); n > 0 {
				text += fmt.Sprintf(" (%d)", n)
			}
		}
		return tk.Label{Text: text, Style: style}
	})
}

func (itemView) Backing(bounds, extent geom.Rect) view.Desc { return nil }

func loadCount(state storedefs.StateStore, key string) int {
	data, err := state.State(key)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return 0
	}
	return n
}
