package term

import (
	"bytes"
	"fmt"
	"io"

	"arbor.elv.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[term] ")

var logWriterDetail = false

// Writer represents the output to a terminal.
type Writer interface {
	// Buffer returns the current buffer.
	Buffer() *Buffer
	// ResetBuffer resets the current buffer, so that the next update redraws
	// everything.
	ResetBuffer()
	// UpdateBuffer updates the terminal display to reflect buf.
	UpdateBuffer(buf *Buffer, fullRefresh bool) error
	// ClearScreen clears the terminal screen and places the cursor at the top
	// left corner.
	ClearScreen() error
	// ShowCursor shows the cursor.
	ShowCursor() error
	// HideCursor hides the cursor.
	HideCursor() error
}

type writer struct {
	file   io.Writer
	curBuf *Buffer
}

// NewWriter returns a Writer that writes VT100 sequences to the given io.Writer.
func NewWriter(f io.Writer) Writer {
	return &writer{f, &Buffer{}}
}

func (w *writer) Buffer() *Buffer {
	return w.curBuf
}

func (w *writer) ResetBuffer() {
	w.curBuf = &Buffer{}
}

// deltaPos calculates the escape sequence needed to move the cursor from one
// position to another. It use relative movements to move to the destination
// line and absolute movement to move to the destination column.
func deltaPos(from, to Pos) []byte {
	buf := new(bytes.Buffer)
	if from.Line < to.Line {
		fmt.Fprintf(buf, "\033[%dB", to.Line-from.Line)
	} else if from.Line > to.Line {
		fmt.Fprintf(buf, "\033[%dA", from.Line-to.Line)
	}
	buf.WriteString("\r")
	if to.Col > 0 {
		fmt.Fprintf(buf, "\033[%dC", to.Col)
	}
	return buf.Bytes()
}

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// UpdateBuffer updates the terminal display to reflect buf. Unchanged lines
// are skipped, and changed lines are only rewritten from the first differing
// cell.
func (w *writer) UpdateBuffer(buf *Buffer, fullRefresh bool) error {
	if buf.Width != w.curBuf.Width && w.curBuf.Lines != nil {
		// Delta rendering is meaningless when the width has changed.
		fullRefresh = true
	}

	// Collect all output, so that the terminal is written to only once.
	output := new(bytes.Buffer)

	output.WriteString(hideCursor)

	// Rewind cursor.
	if pLine := w.curBuf.Dot.Line; pLine > 0 {
		fmt.Fprintf(output, "\033[%dA", pLine)
	}
	output.WriteString("\r")

	if fullRefresh {
		// Write a space before erasing, so that tmux does not mistake us for
		// a full-screen application and save the screen in its scrollback.
		output.WriteString(" \033[J\r")
	}

	// style of last written cell.
	style := ""

	switchStyle := func(newstyle string) {
		if newstyle != style {
			fmt.Fprintf(output, "\033[0;%sm", newstyle)
			style = newstyle
		}
	}

	writeCells := func(cs []Cell) {
		for _, c := range cs {
			switchStyle(c.Style)
			output.WriteString(c.Text)
		}
	}

	if logWriterDetail {
		logger.Printf("going to write %d lines, oldBuf had %d", len(buf.Lines), len(w.curBuf.Lines))
	}

	for i, line := range buf.Lines {
		if i > 0 {
			// Shorter than "\033[B\r".
			output.WriteString("\n")
		}
		if fullRefresh || i >= len(w.curBuf.Lines) {
			writeCells(line)
			continue
		}
		eq, j := compareCells(line, w.curBuf.Lines[i])
		if eq {
			continue
		}
		if firstCol := cellsWidth(line[:j]); firstCol != 0 {
			fmt.Fprintf(output, "\033[%dC", firstCol)
		}
		// Erasing is not needed if the old line is a prefix of the new one.
		if j < len(w.curBuf.Lines[i]) {
			switchStyle("")
			output.WriteString("\033[K")
		}
		writeCells(line[j:])
	}
	if !fullRefresh && len(w.curBuf.Lines) > len(buf.Lines) {
		// Erase the lines the old buffer had below the new one. A plain
		// \033[J would also erase the last column of the current line.
		switchStyle("")
		output.WriteString("\n\033[J\033[A")
	}
	switchStyle("")
	output.Write(deltaPos(endPos(buf), buf.Dot))

	output.WriteString(showCursor)

	if logWriterDetail {
		logger.Printf("going to write %q", output.String())
	}

	_, err := w.file.Write(output.Bytes())
	if err != nil {
		return fmt.Errorf("write to terminal: %w", err)
	}

	w.curBuf = buf
	return nil
}

func (w *writer) HideCursor() error {
	_, err := io.WriteString(w.file, hideCursor)
	return err
}

func (w *writer) ShowCursor() error {
	_, err := io.WriteString(w.file, showCursor)
	return err
}

func (w *writer) ClearScreen() error {
	_, err := io.WriteString(w.file,
		"\033[H"+ // move cursor to the top left corner
			"\033[2J") // clear entire buffer
	return err
}
