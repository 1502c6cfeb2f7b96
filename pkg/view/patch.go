package view

import (
	"fmt"

	"arbor.elv.sh/pkg/geom"
	"arbor.elv.sh/pkg/ident"
)

// Op is the kind of a Patch.
type Op uint8

// Possible values of Op.
const (
	Create Op = iota
	Update
	Move
	Destroy
)

var opNames = [...]string{"Create", "Update", "Move", "Destroy"}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Patch is a unit of change to the retained view tree.
//
// Path identifies the view and Parent its parent view; an empty Parent denotes
// the root view. Desc and Frame are set for Create and Update; Frame is
// relative to the parent view. Index is set for Create and Move, and is valid
// at the time the patch is applied in sequence.
type Patch struct {
	Op     Op
	Path   ident.Path
	Parent ident.Path
	Desc   Desc
	Frame  geom.Rect
	Index  int
}

func (p Patch) String() string {
	switch p.Op {
	case Create, Move:
		return fmt.Sprintf("%v %v @%d", p.Op, p.Path, p.Index)
	default:
		return fmt.Sprintf("%v %v", p.Op, p.Path)
	}
}

// Counts tallies patches by Op.
type Counts struct {
	Create, Update, Move, Destroy int
}

// Count returns the number of patches of each Op.
func Count(patches []Patch) Counts {
	var c Counts
	for _, p := range patches {
		switch p.Op {
		case Create:
			c.Create++
		case Update:
			c.Update++
		case Move:
			c.Move++
		case Destroy:
			c.Destroy++
		}
	}
	return c
}
