package tk

import (
	"arbor.elv.sh/pkg/element"
	"arbor.elv.sh/pkg/geom"
)

// Weight is a layout trait for children of a Row. Children without a weight
// have weight 1.
type Weight int

func weightOf(it element.Item) int {
	if w, ok := it.Traits.(Weight); ok && w > 0 {
		return int(w)
	}
	return 1
}

// columnLayout stacks children vertically. Each child gets the full width and
// its measured height; children that do not fit get a zero height.
type columnLayout struct{}

func (columnLayout) Measure(c geom.Constraint, items []element.Item) geom.Size {
	var size geom.Size
	for _, it := range items {
		s := it.Measure(geom.Constraint{MaxWidth: c.MaxWidth, MaxHeight: geom.Unconstrained})
		size.Width = max(size.Width, s.Width)
		size.Height += s.Height
	}
	return c.Clamp(size)
}

func (columnLayout) Layout(size geom.Size, items []element.Item) []geom.Rect {
	frames := make([]geom.Rect, len(items))
	y := 0
	for i, it := range items {
		h := it.Measure(geom.Constraint{MaxWidth: size.Width, MaxHeight: max(size.Height-y, 0)}).Height
		frames[i] = geom.R(0, y, size.Width, h)
		y += h
	}
	return frames
}

// rowLayout places children side by side, distributing the width according
// to their weights. Each child gets the full height.
type rowLayout struct{}

func (rowLayout) Measure(c geom.Constraint, items []element.Item) geom.Size {
	var size geom.Size
	for _, it := range items {
		s := it.Measure(geom.Constraint{MaxWidth: geom.Unconstrained, MaxHeight: c.MaxHeight})
		size.Width += s.Width
		size.Height = max(size.Height, s.Height)
	}
	return c.Clamp(size)
}

func (rowLayout) Layout(size geom.Size, items []element.Item) []geom.Rect {
	weights := make([]int, len(items))
	for i, it := range items {
		weights[i] = weightOf(it)
	}
	frames := make([]geom.Rect, len(items))
	x := 0
	for i, w := range distribute(size.Width, weights) {
		frames[i] = geom.R(x, 0, w, size.Height)
		x += w
	}
	return frames
}

func distribute(fullWidth int, weights []int) []int {
	remainedWidth := fullWidth
	remainedWeight := 0
	for _, weight := range weights {
		remainedWeight += weight
	}

	widths := make([]int, len(weights))
	for i, weight := range weights {
		widths[i] = remainedWidth * weight / remainedWeight
		remainedWidth -= widths[i]
		remainedWeight -= weight
	}
	return widths
}

// insetLayout gives its only child the container's size minus a margin on
// every side.
type insetLayout struct{ margin int }

func (l insetLayout) Measure(c geom.Constraint, items []element.Item) geom.Size {
	if len(items) == 0 {
		return c.Clamp(geom.Size{Width: 2 * l.margin, Height: 2 * l.margin})
	}
	inner := items[0].Measure(geom.Constraint{
		MaxWidth: shrink(c.MaxWidth, 2*l.margin), MaxHeight: shrink(c.MaxHeight, 2*l.margin)})
	return c.Clamp(geom.Size{Width: inner.Width + 2*l.margin, Height: inner.Height + 2*l.margin})
}

func (l insetLayout) Layout(size geom.Size, items []element.Item) []geom.Rect {
	frames := make([]geom.Rect, len(items))
	for i := range frames {
		frames[i] = geom.R(l.margin, l.margin,
			max(size.Width-2*l.margin, 0), max(size.Height-2*l.margin, 0))
	}
	return frames
}

func shrink(limit, by int) int {
	if limit == geom.Unconstrained {
		return limit
	}
	return max(limit-by, 0)
}
