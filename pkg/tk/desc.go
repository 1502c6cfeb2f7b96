package tk

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/term"
	"arbor.elv.sh/pkg/view"
)

// Text describes a view showing lines of text. Lines that do not fit are
// cropped.
type Text struct {
	Text  string
	Style string
}

func (Text) Kind() string { return "text" }

func (d Text) Create() view.Handle {
	return &View{kind: d.Kind(), painter: d}
}

func (d Text) Apply(h view.Handle) { h.(*View).painter = d }

func (d Text) paint(b *term.Buffer, rect, clip geom.Rect) {
	for i, line := range strings.Split(d.Text, "\n") {
		b.WriteString(term.Pos{Line: rect.Origin.Y + i, Col: rect.Origin.X}, line, d.Style, clip)
	}
}

// TextSize returns the size of the text: the width of its widest line and
// its number of lines.
func TextSize(s string) geom.Size {
	lines := strings.Split(s, "\n")
	size := geom.Size{Height: len(lines)}
	for _, line := range lines {
		size.Width = max(size.Width, runewidth.StringWidth(line))
	}
	return size
}

// Box describes a view with a border and an optional title in the top border.
// Its inside is filled with blanks, hiding whatever was painted below.
type Box struct {
	Title string
	Style string
}

func (Box) Kind() string { return "box" }

func (d Box) Create() view.Handle {
	return &View{kind: d.Kind(), painter: d}
}

func (d Box) Apply(h view.Handle) { h.(*View).painter = d }

func (d Box) paint(b *term.Buffer, rect, clip geom.Rect) {
	cell := func(s string) term.Cell { return term.Cell{Text: s, Style: d.Style} }
	b.Fill(rect.Intersect(clip), term.Blank)
	if rect.Size.Width < 2 || rect.Size.Height < 2 {
		return
	}
	x0, y0, x1, y1 := rect.Origin.X, rect.Origin.Y, rect.MaxX()-1, rect.MaxY()-1
	b.Fill(geom.R(x0+1, y0, x1-x0-1, 1).Intersect(clip), cell("─"))
	b.Fill(geom.R(x0+1, y1, x1-x0-1, 1).Intersect(clip), cell("─"))
	b.Fill(geom.R(x0, y0+1, 1, y1-y0-1).Intersect(clip), cell("│"))
	b.Fill(geom.R(x1, y0+1, 1, y1-y0-1).Intersect(clip), cell("│"))
	for _, corner := range []struct {
		x, y int
		s    string
	}{{x0, y0, "┌"}, {x1, y0, "┐"}, {x0, y1, "└"}, {x1, y1, "┘"}} {
		b.Fill(geom.R(corner.x, corner.y, 1, 1).Intersect(clip), cell(corner.s))
	}
	if d.Title != "" {
		titleClip := geom.R(x0+1, y0, x1-x0-1, 1).Intersect(clip)
		b.WriteString(term.Pos{Line: y0, Col: x0 + 1}, d.Title, d.Style, titleClip)
	}
}
