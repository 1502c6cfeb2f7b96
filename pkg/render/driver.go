// Package render drives render passes: it builds the element tree, reconciles
// it against the retained views and applies the resulting patches.
package render

import (
	"time"

	"arbor.elv.sh/pkg/element"
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/logutil"
	"arbor.elv.sh/pkg/reconcile"
	"arbor.elv.sh/pkg/store/storedefs"
	"arbor.elv.sh/pkg/view"
)

var logger = logutil.GetLogger("[render] ")

// Tracer records completed passes.
type Tracer interface {
	Record(p storedefs.Pass) error
}

// Options configures a Driver. All fields are optional.
type Options struct {
	// Env is the base environment passed to elements. Its Viewport and Path
	// are overwritten by the driver.
	Env element.Env
	// State is pruned after each pass, so that it only contains state keyed
	// to elements in the current tree.
	State storedefs.StateStore
	// Tracer, if set, is called after each pass.
	Tracer Tracer
}

// Stats summarizes a pass.
type Stats struct {
	Pass     int
	Counts   view.Counts
	Views    int
	Pruned   int
	Duration time.Duration
	Patches  []view.Patch
}

// Driver runs render passes against a view store. It is not safe for
// concurrent use; Loop serializes access to it.
type Driver struct {
	store  *view.Store
	opts   Options
	size   geom.Size
	tree   *element.Node
	views  []*element.ViewNode
	pass   int
	last   Stats
	closed bool
}

// NewDriver creates a Driver that attaches top-level views to root.
func NewDriver(root view.Handle, opts Options) *Driver {
	return &Driver{store: view.NewStore(root), opts: opts}
}

// SetSize sets the size of the render area for subsequent passes.
func (d *Driver) SetSize(size geom.Size) { d.size = size }

// Size returns the size of the render area.
func (d *Driver) Size() geom.Size { return d.size }

// Store returns the retained view store.
func (d *Driver) Store() *view.Store { return d.store }

// Tree returns the element tree built by the last pass, or nil if there has
// been none.
func (d *Driver) Tree() *element.Node { return d.tree }

// LastStats returns the stats of the last pass.
func (d *Driver) LastStats() Stats { return d.last }

// RenderAndReconcile runs one pass with root as the root element, and returns
// its stats. Panics from the view store propagate; they indicate a corrupted
// view tree.
func (d *Driver) RenderAndReconcile(root element.Element) Stats {
	if d.closed {
		panic("RenderAndReconcile called on a closed Driver")
	}
	start := time.Now()
	d.pass++

	env := d.opts.Env
	env.Viewport = d.size
	tree := element.Build(root, d.size, env)
	patches, views := reconcile.Reconcile(d.views, tree.Views())
	d.store.Apply(patches...)
	d.tree, d.views = tree, views

	stats := Stats{
		Pass:    d.pass,
		Counts:  view.Count(patches),
		Views:   d.store.Len(),
		Patches: patches,
	}
	stats.Pruned = d.prune()
	stats.Duration = time.Since(start)
	d.last = stats
	d.record(stats)
	logger.Printf("pass %d: %d creates, %d updates, %d moves, %d destroys, %d views",
		stats.Pass, stats.Counts.Create, stats.Counts.Update, stats.Counts.Move,
		stats.Counts.Destroy, stats.Views)
	return stats
}

// prune deletes state keyed to elements that are not in the current tree.
func (d *Driver) prune() int {
	if d.opts.State == nil {
		return 0
	}
	live := make(map[string]struct{})
	d.tree.Walk(func(n *element.Node) { live[n.Path.Key()] = struct{}{} })
	n, err := d.opts.State.PruneState(func(key string) bool {
		_, ok := live[key]
		return ok
	})
	if err != nil {
		logger.Println("prune state:", err)
	}
	return n
}

func (d *Driver) record(stats Stats) {
	if d.opts.Tracer == nil {
		return
	}
	p := storedefs.Pass{
		Number:   stats.Pass,
		Duration: stats.Duration,
		Creates:  stats.Counts.Create,
		Updates:  stats.Counts.Update,
		Moves:    stats.Counts.Move,
		Destroys: stats.Counts.Destroy,
		Views:    stats.Views,
	}
	for _, patch := range stats.Patches {
		p.Patches = append(p.Patches, patch.String())
	}
	if err := d.opts.Tracer.Record(p); err != nil {
		logger.Println("record trace:", err)
	}
}

// Close destroys all retained views. The Driver cannot be used afterwards.
func (d *Driver) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.store.Close()
	d.tree, d.views = nil, nil
}
