package reconcile

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"arbor.elv.sh/pkg/element"
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
	"arbor.elv.sh/pkg/view"
	"arbor.elv.sh/pkg/view/viewtest"
)

var (
	textType  = ident.NewType("Text")
	rowType   = ident.NewType("Row")
	imageType = ident.NewType("Image")
	labelType = ident.NewType("Label")
	boxType   = ident.NewType("Box")
)

func id(typ *ident.Type, key ident.Key, n uint) ident.Identifier {
	return ident.Identifier{Type: typ, Key: key, Occurrence: n}
}

// vnode describes a view node for tests.
type vnode struct {
	id   ident.Identifier
	text string
	kind string
	kids []vnode
}

func s(id ident.Identifier, text string, kids ...vnode) vnode {
	return vnode{id: id, text: text, kids: kids}
}

func views(parent ident.Path, vnodes ...vnode) []*element.ViewNode {
	var vs []*element.ViewNode
	for _, sp := range vnodes {
		p := parent.Append(sp.id)
		vs = append(vs, &element.ViewNode{
			Path:     p,
			Desc:     viewtest.Desc{Name: p.String(), ViewKind: sp.kind, Text: sp.text},
			Children: views(p, sp.kids...),
		})
	}
	return vs
}

func summarize(patches []view.Patch) []string {
	out := make([]string, len(patches))
	for i, p := range patches {
		out[i] = p.String()
	}
	return out
}

func TestReconcile_ReorderEmitsOneMove(t *testing.T) {
	t1, t2 := id(textType, ident.NoKey, 1), id(textType, ident.NoKey, 2)
	old := views(nil, s(t1, "x"), s(t2, "y"))
	new := views(nil, s(t2, "y"), s(t1, "x"))
	patches, _ := Reconcile(old, new)
	if diff := cmp.Diff([]string{"Move /Text#2 @0"}, summarize(patches)); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
}

func TestReconcile_CreatesInDeclaredOrder(t *testing.T) {
	i1, i2 := id(imageType, ident.NoKey, 1), id(imageType, ident.NoKey, 2)
	patches, _ := Reconcile(nil, views(nil, s(i1, ""), s(i2, "")))
	want := []string{"Create /Image#1 @0", "Create /Image#2 @1"}
	if diff := cmp.Diff(want, summarize(patches)); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
}

// column lays out its children top to bottom, one line each.
type column struct{}

func (column) Measure(c geom.Constraint, items []element.Item) geom.Size {
	return c.Clamp(geom.Size{Width: 1, Height: len(items)})
}

func (column) Layout(size geom.Size, items []element.Item) []geom.Rect {
	frames := make([]geom.Rect, len(items))
	for i := range items {
		frames[i] = geom.R(0, i, size.Width, 1)
	}
	return frames
}

type root struct{ children []element.Child }

func (root) Type() *ident.Type                { return boxType }
func (r root) Content() element.Content       { return element.Container(column{}, r.children...) }
func (root) Backing(_, _ geom.Rect) view.Desc { return viewtest.D("root", "", nil) }

type leaf struct {
	typ  *ident.Type
	text string
}

func (l leaf) Type() *ident.Type { return l.typ }
func (leaf) Content() element.Content {
	return element.Leaf(element.FixedSize{Width: 1, Height: 1})
}
func (l leaf) Backing(_, _ geom.Rect) view.Desc { return viewtest.D(l.text, l.text, nil) }

func build(children ...element.Child) []*element.ViewNode {
	return element.Build(root{children}, geom.Size{Width: 4, Height: 4}, element.Env{}).Views()
}

func TestReconcile_RemovingKeyedSibling(t *testing.T) {
	old := build(element.Keyed("a", leaf{rowType, "a"}), element.Keyed("b", leaf{rowType, "b"}))
	new := build(element.Keyed("b", leaf{rowType, "b"}))
	patches, _ := Reconcile(old, new)
	// Row "b" moved up a line, so it gets an Update carrying its new frame.
	want := []string{`Destroy /Box#1/Row/"a"#1`, `Update /Box#1/Row/"b"#1`}
	if diff := cmp.Diff(want, summarize(patches)); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
	if got := patches[1].Frame; got != geom.R(0, 0, 4, 1) {
		t.Errorf("frame of update -> %v", got)
	}
}

func TestReconcile_DuplicateKeysRenderDistinctViews(t *testing.T) {
	vs := build(element.Keyed("dup", leaf{labelType, "1"}), element.Keyed("dup", leaf{labelType, "2"}))
	patches, _ := Reconcile(nil, vs)
	want := []string{
		"Create /Box#1 @0",
		`Create /Box#1/Label/"dup"#1 @0`,
		`Create /Box#1/Label/"dup"#2 @1`,
	}
	if diff := cmp.Diff(want, summarize(patches)); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
	log := &viewtest.Log{}
	rootView := viewtest.NewRoot(log)
	view.NewStore(rootView).Apply(patches...)
	if n := len(rootView.Children[0].Children); n != 2 {
		t.Errorf("got %d retained label views, want 2", n)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	vs := build(
		element.C(leaf{textType, "a"}),
		element.Keyed("k", leaf{rowType, "b"}),
		element.C(leaf{textType, "c"}),
	)
	patches, _ := Reconcile(vs, vs)
	if len(patches) != 0 {
		t.Errorf("self-reconciliation -> %v, want no patches", summarize(patches))
	}
	// Rebuilding the same declaration produces equal descriptions and frames.
	again := build(
		element.C(leaf{textType, "a"}),
		element.Keyed("k", leaf{rowType, "b"}),
		element.C(leaf{textType, "c"}),
	)
	if patches, _ := Reconcile(vs, again); len(patches) != 0 {
		t.Errorf("reconciling an identical rebuild -> %v, want no patches", summarize(patches))
	}
	changed := build(
		element.C(leaf{textType, "a"}),
		element.Keyed("k", leaf{rowType, "B"}),
		element.C(leaf{textType, "c"}),
	)
	patches, _ = Reconcile(vs, changed)
	if diff := cmp.Diff([]string{`Update /Box#1/Row/"k"#1`}, summarize(patches)); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
}

func TestReconcile_DestroyCascades(t *testing.T) {
	b1, b2 := id(boxType, ident.NoKey, 1), id(boxType, ident.NoKey, 2)
	t1, t2 := id(textType, ident.NoKey, 1), id(textType, ident.NoKey, 2)
	old := views(nil,
		s(b1, "", s(t1, "a", s(t1, "deep")), s(t2, "b")),
		s(b2, "", s(t1, "c")),
	)
	new := views(nil, s(b2, "changed", s(t1, "changed")))
	patches, _ := Reconcile(old, new)
	want := []string{
		"Destroy /Box#1/Text#2",
		"Destroy /Box#1/Text#1/Text#1",
		"Destroy /Box#1/Text#1",
		"Destroy /Box#1",
		"Update /Box#2",
		"Update /Box#2/Text#1",
	}
	if diff := cmp.Diff(want, summarize(patches)); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
	destroyed := ident.Path{b1}
	for _, p := range patches {
		if p.Op != view.Destroy && p.Path.HasPrefix(destroyed) {
			t.Errorf("%v targets a destroyed subtree", p)
		}
	}
}

func TestReconcile_KindChangeReplacesView(t *testing.T) {
	t1 := id(textType, ident.NoKey, 1)
	old := views(nil, vnode{id: t1, kind: "a", kids: []vnode{s(t1, "child")}})
	new := views(nil, vnode{id: t1, kind: "b", kids: []vnode{s(t1, "child")}})
	patches, _ := Reconcile(old, new)
	want := []string{
		"Destroy /Text#1/Text#1",
		"Destroy /Text#1",
		"Create /Text#1 @0",
		"Create /Text#1/Text#1 @0",
	}
	if diff := cmp.Diff(want, summarize(patches)); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
}

func TestReconcile_DuplicateIdentitiesLastWins(t *testing.T) {
	t1 := id(textType, ident.NoKey, 1)
	vs := views(nil, s(t1, "first"), s(t1, "second"))
	patches, next := Reconcile(nil, vs)
	if diff := cmp.Diff([]string{"Create /Text#1 @0"}, summarize(patches)); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
	if len(next) != 1 || next[0].Desc.(viewtest.Desc).Text != "second" {
		t.Errorf("next tree -> %v", next)
	}
}

func TestReconcile_MovesWithInsertionsAndRemovals(t *testing.T) {
	k := func(s string) ident.Identifier { return id(rowType, ident.K(s), 1) }
	old := views(nil, s(k("a"), ""), s(k("b"), ""), s(k("c"), ""), s(k("d"), ""))
	new := views(nil, s(k("c"), ""), s(k("x"), ""), s(k("d"), ""), s(k("b"), ""), s(k("a"), ""))
	patches, _ := Reconcile(old, new)
	// Indices are valid when the patches are applied in order: "x" goes after
	// "c" while "a" and "b" are still in front of it, giving [a b c x d]. "b"
	// then goes after "d", which is last once "b" is taken out.
	want := []string{
		`Create /Row/"x"#1 @3`,
		`Move /Row/"b"#1 @4`,
		`Move /Row/"a"#1 @4`,
	}
	if diff := cmp.Diff(want, summarize(patches)); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
	checkApply(t, old, new)
}

func TestReconcile_RetainsDeclaredNodesWhenNothingIsCopied(t *testing.T) {
	r, t1, t2 := id(rowType, ident.NoKey, 1), id(textType, ident.NoKey, 1), id(textType, ident.NoKey, 2)
	old := views(nil, s(r, "", s(t1, "x"), s(t2, "y")))
	new := views(nil, s(r, "", s(t1, "x"), s(t2, "z")))
	_, next := Reconcile(old, new)
	if len(next) != 1 || next[0] != new[0] {
		t.Errorf("next tree -> %v, want the declared nodes", next)
	}

	dup := views(nil, s(r, "", s(t1, "x"), s(t1, "y")))
	_, next = Reconcile(old, dup)
	if len(next) != 1 || next[0] == dup[0] || len(next[0].Children) != 1 {
		t.Errorf("next tree -> %v, want a copy without the duplicate", next)
	}
}

// checkApply applies the patches from reconciling old with new to a store
// holding old, and checks that the result mirrors new.
func checkApply(t *testing.T, old, new []*element.ViewNode) {
	t.Helper()
	log := &viewtest.Log{}
	rootView := viewtest.NewRoot(log)
	store := view.NewStore(rootView)
	initial, _ := Reconcile(nil, old)
	store.Apply(initial...)
	patches, next := Reconcile(old, new)
	store.Apply(patches...)
	if diff := cmp.Diff(outline(new), dump(rootView.Children)); diff != "" {
		t.Errorf("view tree after applying (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(outline(new), outline(next)); diff != "" {
		t.Errorf("next tree (-want +got):\n%s", diff)
	}
}

func outline(vs []*element.ViewNode) []string {
	var out []string
	element.WalkViews(vs, func(vn, _ *element.ViewNode) {
		d := vn.Desc.(viewtest.Desc)
		out = append(out, d.Name+"="+d.Text)
	})
	return out
}

func dump(vs []*viewtest.View) []string {
	var out []string
	for _, v := range vs {
		out = append(out, v.Name+"="+v.Text)
		out = append(out, dump(v.Children)...)
	}
	return out
}

func TestReconcile_RandomizedLists(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	types := []*ident.Type{textType, rowType, imageType}
	randomNodes := func() []vnode {
		var vnodes []vnode
		var f ident.Factory
		for i := r.Intn(7); i > 0; i-- {
			typ := types[r.Intn(len(types))]
			key := ident.NoKey
			if r.Intn(2) == 0 {
				key = ident.K(fmt.Sprint(r.Intn(4)))
			}
			sp := vnode{id: f.Identifier(typ, key), text: fmt.Sprint(r.Intn(2))}
			vnodes = append(vnodes, sp)
		}
		return vnodes
	}
	var gen func(depth int) []vnode
	gen = func(depth int) []vnode {
		vnodes := randomNodes()
		if depth > 0 {
			for i := range vnodes {
				vnodes[i].kids = gen(depth - 1)
			}
		}
		r.Shuffle(len(vnodes), func(i, j int) { vnodes[i], vnodes[j] = vnodes[j], vnodes[i] })
		return vnodes
	}
	for i := 0; i < 300; i++ {
		old, new := views(nil, gen(2)...), views(nil, gen(2)...)
		checkApply(t, old, new)
		if t.Failed() {
			t.Fatalf("failed on iteration %d", i)
		}
	}
}

func TestReconcile_RandomizedPermutationsMoveMinimally(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		n := r.Intn(10) + 1
		var vnodes []vnode
		for j := 0; j < n; j++ {
			vnodes = append(vnodes, s(id(rowType, ident.K(fmt.Sprint(j)), 1), ""))
		}
		old := views(nil, vnodes...)
		perm := r.Perm(n)
		shuffled := make([]vnode, n)
		for j, k := range perm {
			shuffled[j] = vnodes[k]
		}
		new := views(nil, shuffled...)
		patches, _ := Reconcile(old, new)
		c := view.Count(patches)
		if c.Create != 0 || c.Destroy != 0 || c.Update != 0 {
			t.Fatalf("permutation %v -> %v", perm, summarize(patches))
		}
		if want := n - lisLength(perm); c.Move != want {
			t.Fatalf("permutation %v -> %d moves, want %d", perm, c.Move, want)
		}
		if c.Move == 0 && !sorted(perm) {
			t.Fatalf("permutation %v needs moves", perm)
		}
		checkApply(t, old, new)
	}
}

func lisLength(xs []int) int {
	best := make([]int, len(xs))
	longest := 0
	for i := range xs {
		best[i] = 1
		for j := 0; j < i; j++ {
			if xs[j] < xs[i] && best[j]+1 > best[i] {
				best[i] = best[j] + 1
			}
		}
		longest = max(longest, best[i])
	}
	return longest
}

func sorted(xs []int) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}
