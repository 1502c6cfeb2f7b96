package ident

import "strings"

// Path is a sequence of identifiers, from an ancestor down to a node.
type Path []Identifier

// Append returns a new Path with id appended. The receiver is never modified,
// so paths sharing a prefix can be derived from one another safely.
func (p Path) Append(id Identifier) Path {
	q := make(Path, len(p)+1)
	copy(q, p)
	q[len(p)] = id
	return q
}

// Concat returns a new Path made of p followed by q.
func (p Path) Concat(q Path) Path {
	r := make(Path, 0, len(p)+len(q))
	return append(append(r, p...), q...)
}

// Last returns the last identifier of the path, or the zero Identifier if the
// path is empty.
func (p Path) Last() Identifier {
	if len(p) == 0 {
		return Identifier{}
	}
	return p[len(p)-1]
}

// Equal reports whether two paths contain the same identifiers.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether q is a prefix of p.
func (p Path) HasPrefix(q Path) bool {
	return len(q) <= len(p) && p[:len(q)].Equal(q)
}

// Key returns a canonical string encoding of the path. Two paths have the same
// Key iff they are Equal, which makes Key suitable as a map or database key.
func (p Path) Key() string {
	var sb strings.Builder
	for i, id := range p {
		if i > 0 {
			sb.WriteByte('/')
		}
		id.key(&sb)
	}
	return sb.String()
}

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, id := range p {
		sb.WriteByte('/')
		sb.WriteString(id.String())
	}
	return sb.String()
}
