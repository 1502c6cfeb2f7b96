package term

import (
	"bufio"
	"fmt"
	"io"
)

// Key is a key press.
type Key struct {
	Rune rune
	// Name is set for keys that do not produce a rune, such as "Up".
	Name string
}

func (k Key) String() string {
	if k.Name != "" {
		return k.Name
	}
	if k.Rune < 0x20 {
		return "Ctrl-" + string(k.Rune^0x40)
	}
	return string(k.Rune)
}

// Named keys.
var (
	Up        = Key{Name: "Up"}
	Down      = Key{Name: "Down"}
	Left      = Key{Name: "Left"}
	Right     = Key{Name: "Right"}
	Enter     = Key{Rune: '\r'}
	Escape    = Key{Rune: 0x1b}
	Backspace = Key{Rune: 0x7f}
)

var csiKeys = map[rune]Key{'A': Up, 'B': Down, 'C': Right, 'D': Left}

type seqError struct {
	msg string
	seq string
}

func (err seqError) Error() string {
	return fmt.Sprintf("%s: %q", err.msg, err.seq)
}

// IsReadErrorRecoverable returns whether an error returned by Reader is
// recoverable.
func IsReadErrorRecoverable(err error) bool {
	_, ok := err.(seqError)
	return ok
}

// Reader decodes key presses from a terminal in raw mode.
type Reader struct {
	rd *bufio.Reader
}

// NewReader creates a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{bufio.NewReader(r)}
}

// ReadKey reads one key press. An escape sequence is only recognized when it
// arrives in one piece; terminals send them in a single write.
func (rd *Reader) ReadKey() (Key, error) {
	r, _, err := rd.rd.ReadRune()
	if err != nil {
		return Key{}, err
	}
	if r == '\n' {
		return Enter, nil
	}
	if r != 0x1b || rd.rd.Buffered() == 0 {
		return Key{Rune: r}, nil
	}
	seq := string(r)
	next := func() rune {
		r, _, err := rd.rd.ReadRune()
		if err != nil {
			return -1
		}
		seq += string(r)
		return r
	}
	switch next() {
	case '[', 'O':
		// CSI or SS3: parameters, then a final byte.
		for {
			r := next()
			switch {
			case r == -1:
				return Key{}, seqError{"incomplete sequence", seq}
			case r >= 0x40 && r <= 0x7e:
				if k, ok := csiKeys[r]; ok {
					return k, nil
				}
				return Key{}, seqError{"unknown sequence", seq}
			}
		}
	default:
		return Key{}, seqError{"unknown sequence", seq}
	}
}
