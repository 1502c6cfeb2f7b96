package tk

import (
	"arbor.elv.sh/pkg/element"
	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
	"arbor.elv.sh/pkg/view"
)

var (
	labelType  = ident.NewType("Label")
	panelType  = ident.NewType("Panel")
	columnType = ident.NewType("Column")
	rowType    = ident.NewType("Row")
)

// Label shows some text.
type Label struct {
	Text  string
	Style string
}

func (Label) Type() *ident.Type { return labelType }

func (l Label) Content() element.Content {
	size := TextSize(l.Text)
	return element.Leaf(element.FixedSize(size))
}

func (l Label) Backing(bounds, extent geom.Rect) view.Desc {
	return Text{l.Text, l.Style}
}

// Panel draws a box around its child.
type Panel struct {
	Title string
	Style string
	Child element.Element
}

func (Panel) Type() *ident.Type { return panelType }

func (p Panel) Content() element.Content {
	if p.Child == nil {
		return element.Container(insetLayout{1})
	}
	return element.Container(insetLayout{1}, element.C(p.Child))
}

func (p Panel) Backing(bounds, extent geom.Rect) view.Desc {
	return Box{p.Title, p.Style}
}

// Column stacks its children vertically. It has no view of its own.
type Column []element.Child

func (Column) Type() *ident.Type                          { return columnType }
func (c Column) Content() element.Content                 { return element.Container(columnLayout{}, c...) }
func (Column) Backing(bounds, extent geom.Rect) view.Desc { return nil }

// Row places its children side by side, with widths proportional to their
// Weight traits. It has no view of its own.
type Row []element.Child

func (Row) Type() *ident.Type                          { return rowType }
func (r Row) Content() element.Content                 { return element.Container(rowLayout{}, r...) }
func (Row) Backing(bounds, extent geom.Rect) view.Desc { return nil }

// Weighted declares a keyed child of a Row with a weight. An empty key
// declares an unkeyed child.
func Weighted(w int, key string, el element.Element) element.Child {
	c := element.C(el)
	if key != "" {
		c = element.Keyed(key, el)
	}
	c.Traits = Weight(w)
	return c
}
