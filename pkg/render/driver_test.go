package render

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"arbor.elv.sh/pkg/element"
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
	"arbor.elv.sh/pkg/store"
	"arbor.elv.sh/pkg/store/storedefs"
	"arbor.elv.sh/pkg/view"
	"arbor.elv.sh/pkg/view/viewtest"
)

var (
	labelType  = ident.NewType("Label")
	columnType = ident.NewType("Column")
)

// label is a one-line leaf backed by a test view named after its text.
type label struct {
	text string
	log  *viewtest.Log
}

func (label) Type() *ident.Type { return labelType }
func (l label) Content() element.Content {
	return element.Leaf(element.FixedSize{Width: len(l.text), Height: 1})
}
func (l label) Backing(bounds, extent geom.Rect) view.Desc {
	return viewtest.D(l.text, l.text, l.log)
}

// column stacks its children vertically and has no view of its own.
type column struct{ children []element.Child }

func (column) Type() *ident.Type { return columnType }
func (c column) Content() element.Content {
	return element.Container(rows{}, c.children...)
}
func (column) Backing(bounds, extent geom.Rect) view.Desc { return nil }

type rows struct{}

func (rows) Measure(c geom.Constraint, items []element.Item) geom.Size {
	var size geom.Size
	for _, it := range items {
		s := it.Measure(c)
		size.Width = max(size.Width, s.Width)
		size.Height += s.Height
	}
	return c.Clamp(size)
}

func (rows) Layout(size geom.Size, items []element.Item) []geom.Rect {
	frames := make([]geom.Rect, len(items))
	y := 0
	for i, it := range items {
		h := it.Measure(geom.Within(size)).Height
		frames[i] = geom.R(0, y, size.Width, h)
		y += h
	}
	return frames
}

func labels(log *viewtest.Log, texts ...string) column {
	var c column
	for _, text := range texts {
		c.children = append(c.children, element.Keyed(text, label{text, log}))
	}
	return c
}

func TestDriver_ReusesViews(t *testing.T) {
	log := &viewtest.Log{}
	root := viewtest.NewRoot(log)
	d := NewDriver(root, Options{})
	d.SetSize(geom.Size{Width: 10, Height: 5})

	stats := d.RenderAndReconcile(labels(log, "a", "b", "c"))
	if stats.Pass != 1 || stats.Counts != (view.Counts{Create: 3}) || stats.Views != 3 {
		t.Errorf("first pass stats %+v", stats)
	}
	first := append([]*viewtest.View(nil), root.Children...)

	log.Reset()
	stats = d.RenderAndReconcile(labels(log, "c", "a", "b"))
	if stats.Counts != (view.Counts{Update: 3, Move: 1}) {
		t.Errorf("second pass counts %+v", stats.Counts)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, root.Names()); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
	for _, v := range first {
		if v.Released {
			t.Errorf("view %s was released", v.Name)
		}
	}
	if root.Children[0] != first[2] {
		t.Errorf("view for c was not reused")
	}

	log.Reset()
	stats = d.RenderAndReconcile(labels(log, "c", "a", "b"))
	if stats.Counts != (view.Counts{}) || len(log.Ops) != 0 {
		t.Errorf("identical pass did work: %+v, %v", stats.Counts, log.Ops)
	}
	if d.LastStats().Pass != 3 {
		t.Errorf("LastStats().Pass = %d, want 3", d.LastStats().Pass)
	}
}

func TestDriver_FramesFollowLayout(t *testing.T) {
	root := viewtest.NewRoot(nil)
	d := NewDriver(root, Options{})
	d.SetSize(geom.Size{Width: 4, Height: 3})
	d.RenderAndReconcile(labels(nil, "a", "b"))
	if got := root.Children[1].Frame; got != geom.R(0, 1, 4, 1) {
		t.Errorf("frame of b = %v", got)
	}
	d.RenderAndReconcile(labels(nil, "b"))
	if got := root.Children[0].Frame; got != geom.R(0, 0, 4, 1) {
		t.Errorf("frame of b after removing a = %v", got)
	}
}

func TestDriver_PassesViewportToElements(t *testing.T) {
	var seen geom.Size
	root := element.FromContextual(viewportRecorder{&seen})
	d := NewDriver(viewtest.NewRoot(nil), Options{})
	d.SetSize(geom.Size{Width: 7, Height: 2})
	d.RenderAndReconcile(root)
	if seen != (geom.Size{Width: 7, Height: 2}) {
		t.Errorf("viewport = %v", seen)
	}
}

type viewportRecorder struct{ seen *geom.Size }

func (viewportRecorder) Type() *ident.Type { return columnType }
func (p viewportRecorder) Representation(env element.Env) element.Element {
	*p.seen = env.Viewport
	return label{"x", nil}
}

func TestDriver_PrunesState(t *testing.T) {
	st := store.NewMemStore()
	d := NewDriver(viewtest.NewRoot(nil), Options{State: st})
	d.SetSize(geom.Size{Width: 5, Height: 5})
	d.RenderAndReconcile(labels(nil, "a", "b"))

	for _, text := range []string{"a", "b"} {
		n := find(t, d.Tree(), text)
		st.SetState(n.Path.Key(), []byte(text))
	}
	st.SetState(d.Tree().Path.Key(), []byte("root"))

	stats := d.RenderAndReconcile(labels(nil, "b"))
	if stats.Pruned != 1 {
		t.Errorf("Pruned = %d, want 1", stats.Pruned)
	}
	keys, _ := st.StateKeys()
	if len(keys) != 2 {
		t.Errorf("state keys after prune: %q", keys)
	}
	b := find(t, d.Tree(), "b")
	if v, err := st.State(b.Path.Key()); string(v) != "b" || err != nil {
		t.Errorf("state of b -> (%q, %v)", v, err)
	}
}

func find(t *testing.T, root *element.Node, text string) *element.Node {
	t.Helper()
	var found *element.Node
	root.Walk(func(n *element.Node) {
		if l, ok := n.Element.(label); ok && l.text == text {
			found = n
		}
	})
	if found == nil {
		t.Fatalf("no label %q", text)
	}
	return found
}

type fakeTracer struct {
	passes []storedefs.Pass
	err    error
}

func (ft *fakeTracer) Record(p storedefs.Pass) error {
	ft.passes = append(ft.passes, p)
	return ft.err
}

func TestDriver_Traces(t *testing.T) {
	tracer := &fakeTracer{}
	d := NewDriver(viewtest.NewRoot(nil), Options{Tracer: tracer})
	d.SetSize(geom.Size{Width: 5, Height: 5})
	d.RenderAndReconcile(labels(nil, "a"))
	tracer.err = errors.New("disk full")
	d.RenderAndReconcile(labels(nil, "b"))

	if len(tracer.passes) != 2 {
		t.Fatalf("got %d traced passes, want 2", len(tracer.passes))
	}
	p := tracer.passes[1]
	if p.Number != 2 || p.Creates != 1 || p.Destroys != 1 || p.Views != 1 {
		t.Errorf("second pass traced as %+v", p)
	}
	want := []string{`Destroy /Column#1/Label/"a"#1`, `Create /Column#1/Label/"b"#1 @0`}
	if diff := cmp.Diff(want, p.Patches); diff != "" {
		t.Errorf("traced patches (-want +got):\n%s", diff)
	}
}

func TestDriver_Close(t *testing.T) {
	root := viewtest.NewRoot(nil)
	d := NewDriver(root, Options{})
	d.SetSize(geom.Size{Width: 5, Height: 5})
	d.RenderAndReconcile(labels(nil, "a", "b"))
	views := append([]*viewtest.View(nil), root.Children...)
	d.Close()
	d.Close()
	if len(root.Children) != 0 || d.Store().Len() != 0 {
		t.Errorf("views left after Close: %v", root.Names())
	}
	for _, v := range views {
		if !v.Released {
			t.Errorf("view %s not released", v.Name)
		}
	}
	defer func() {
		if recover() == nil {
			t.Errorf("RenderAndReconcile after Close did not panic")
		}
	}()
	d.RenderAndReconcile(labels(nil, "a"))
}
