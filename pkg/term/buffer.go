// Package term models the terminal screen and talks VT100 to it.
package term

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"arbor.elv.sh/pkg/geom"
)

// Cell is an indivisible unit on the screen. A wide character occupies one
// Cell with its text, followed by a Cell with empty text for each extra
// column, so that a line has one Cell per column.
type Cell struct {
	Text  string
	Style string
}

// Blank is an unstyled space.
var Blank = Cell{" ", ""}

// Pos is a line/column position.
type Pos struct {
	Line, Col int
}

// Returns the total width of a Cell slice.
func cellsWidth(cs []Cell) int {
	w := 0
	for _, c := range cs {
		w += runewidth.StringWidth(c.Text)
	}
	return w
}

// Returns whether two Cell slices are equal, and when they are not, the first
// index at which they differ.
func compareCells(r1, r2 []Cell) (bool, int) {
	for i, c := range r1 {
		if i >= len(r2) || c != r2[i] {
			return false, i
		}
	}
	if len(r1) < len(r2) {
		return false, len(r1)
	}
	return true, 0
}

// Buffer is a rectangle of cells reflecting an area of the terminal, along
// with a cursor (called a "dot" here).
//
// The terminal is only ever written to, never queried, so the Buffer must
// agree with the terminal on the width of characters.
type Buffer struct {
	Width int
	// Lines the content of the buffer. Every line has exactly Width cells.
	Lines [][]Cell
	// Dot is what the user perceives as the cursor.
	Dot Pos
}

// NewBuffer returns a Buffer of the given size filled with blanks.
func NewBuffer(size geom.Size) *Buffer {
	b := &Buffer{Width: size.Width, Lines: make([][]Cell, size.Height)}
	for i := range b.Lines {
		b.Lines[i] = make([]Cell, size.Width)
		for j := range b.Lines[i] {
			b.Lines[i][j] = Blank
		}
	}
	return b
}

// Size returns the size of the buffer.
func (b *Buffer) Size() geom.Size {
	return geom.Size{Width: b.Width, Height: len(b.Lines)}
}

// Bounds returns the rectangle covered by the buffer.
func (b *Buffer) Bounds() geom.Rect { return geom.Rect{Size: b.Size()} }

// Fill sets all cells within r to c.
func (b *Buffer) Fill(r geom.Rect, c Cell) {
	r = r.Intersect(b.Bounds())
	for y := r.Origin.Y; y < r.MaxY(); y++ {
		for x := r.Origin.X; x < r.MaxX(); x++ {
			b.Lines[y][x] = c
		}
	}
}

// WriteString writes s starting at p, without wrapping. Only the part within
// clip is written; a wide character that does not fit entirely is replaced by
// spaces. Control characters are written in caret notation. It returns the
// column after the last character.
func (b *Buffer) WriteString(p Pos, s, style string, clip geom.Rect) int {
	clip = clip.Intersect(b.Bounds())
	if p.Line < clip.Origin.Y || p.Line >= clip.MaxY() {
		return p.Col + runewidth.StringWidth(s)
	}
	line := b.Lines[p.Line]
	visible := func(x int) bool { return x >= clip.Origin.X && x < clip.MaxX() }
	col := p.Col
	for _, r := range s {
		cells := cellsOf(r)
		whole := visible(col) && visible(col+len(cells)-1)
		for i, c := range cells {
			if !visible(col + i) {
				continue
			}
			if !whole && (c.Text == "" || runewidth.StringWidth(c.Text) > 1) {
				c.Text = " "
			}
			c.Style = style
			line[col+i] = c
		}
		col += len(cells)
	}
	return col
}

// cellsOf returns the cells for a rune, one per column.
func cellsOf(r rune) []Cell {
	if r < 0x20 || r == 0x7f {
		return []Cell{{Text: "^"}, {Text: string(r ^ 0x40)}}
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return nil
	}
	cells := make([]Cell, w)
	cells[0].Text = string(r)
	return cells
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{Width: b.Width, Lines: make([][]Cell, len(b.Lines)), Dot: b.Dot}
	for i, line := range b.Lines {
		c.Lines[i] = append([]Cell(nil), line...)
	}
	return c
}

// Returns the position of the cursor after writing the entire buffer.
func endPos(b *Buffer) Pos {
	if len(b.Lines) == 0 {
		return Pos{}
	}
	return Pos{len(b.Lines) - 1, cellsWidth(b.Lines[len(b.Lines)-1])}
}

// String returns the text content of the buffer, one line per buffer line,
// with trailing spaces removed.
func (b *Buffer) String() string {
	var sb strings.Builder
	for i, line := range b.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		var lb strings.Builder
		for _, c := range line {
			lb.WriteString(c.Text)
		}
		sb.WriteString(strings.TrimRight(lb.String(), " "))
	}
	return sb.String()
}

// TTYString returns a text representation of the buffer. It uses box drawing
// characters to represent the border of the buffer, and embeds SGR sequences to
// represent the style of the text.
func (b *Buffer) TTYString() string {
	if b == nil {
		return "nil"
	}
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "Width = %d, Dot = (%d, %d)\n", b.Width, b.Dot.Line, b.Dot.Col)
	sb.WriteString("┌" + strings.Repeat("─", b.Width) + "┐\n")
	for _, line := range b.Lines {
		sb.WriteRune('│')
		lastStyle := ""
		for _, cell := range line {
			if cell.Style != lastStyle {
				switch {
				case lastStyle == "":
					sb.WriteString("\033[" + cell.Style + "m")
				case cell.Style == "":
					sb.WriteString("\033[m")
				default:
					sb.WriteString("\033[;" + cell.Style + "m")
				}
				lastStyle = cell.Style
			}
			sb.WriteString(cell.Text)
		}
		if lastStyle != "" {
			sb.WriteString("\033[m")
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", b.Width) + "┘\n")
	return sb.String()
}
