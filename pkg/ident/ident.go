// Package ident assigns identities to element instances.
//
// An element's identity is the triple (type, key, occurrence). The occurrence
// counts how many siblings with the same type and key have been seen so far in
// declared order, so identities survive reordering, insertion and removal of
// unrelated siblings.
package ident

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// Type is a stable token identifying an element type. Tokens are compared by
// identity; two tokens created with the same name are still distinct.
type Type struct {
	name   string
	serial uint64
}

var lastSerial uint64

// NewType creates a new type token. It is meant to be called once per element
// type, typically to initialize a package-level variable.
func NewType(name string) *Type {
	return &Type{name, atomic.AddUint64(&lastSerial, 1)}
}

// Name returns the name the token was created with.
func (t *Type) Name() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

func (t *Type) String() string { return t.Name() }

// Equal reports whether t and u are the same token.
func (t *Type) Equal(u *Type) bool { return t == u }

// Key is an optional explicit key supplied by the author of an element.
type Key struct {
	Value string
	Set   bool
}

// NoKey is the absent key.
var NoKey = Key{}

// K returns a present key with the given value.
func K(s string) Key { return Key{s, true} }

func (k Key) String() string {
	if !k.Set {
		return "nil"
	}
	return strconv.Quote(k.Value)
}

// Identifier identifies one element instance among its siblings. Identifiers
// are comparable with ==.
type Identifier struct {
	Type       *Type
	Key        Key
	Occurrence uint
}

// Equal reports whether id and other are the same identifier. It is the same
// as ==.
func (id Identifier) Equal(other Identifier) bool { return id == other }

// String returns a human-readable form such as Text#1 or Row/"a"#2.
func (id Identifier) String() string {
	var sb strings.Builder
	sb.WriteString(id.Type.Name())
	if id.Key.Set {
		sb.WriteString("/")
		sb.WriteString(strconv.Quote(id.Key.Value))
	}
	sb.WriteString("#")
	sb.WriteString(strconv.FormatUint(uint64(id.Occurrence), 10))
	return sb.String()
}

// key writes a canonical, collision-free encoding of the identifier. Type
// names are not unique, so the token serial is used as well. Quoted parts are
// self-delimiting, which keeps the encoding of a Path unambiguous.
func (id Identifier) key(sb *strings.Builder) {
	sb.WriteString(strconv.Quote(id.Type.Name()))
	sb.WriteByte(':')
	if id.Type != nil {
		sb.WriteString(strconv.FormatUint(id.Type.serial, 10))
	}
	if id.Key.Set {
		sb.WriteByte('=')
		sb.WriteString(strconv.Quote(id.Key.Value))
	}
	sb.WriteByte('#')
	sb.WriteString(strconv.FormatUint(uint64(id.Occurrence), 10))
}

type factoryKey struct {
	typ *Type
	key Key
}

// Factory assigns identifiers within one sibling group. A new Factory must be
// used for every sibling group; the zero value is ready to use.
type Factory struct {
	counts map[factoryKey]uint
}

// Identifier returns the identifier for the next element with the given type
// and key. The first call for a (type, key) pair yields occurrence 1.
func (f *Factory) Identifier(typ *Type, key Key) Identifier {
	if f.counts == nil {
		f.counts = make(map[factoryKey]uint)
	}
	k := factoryKey{typ, key}
	f.counts[k]++
	return Identifier{typ, key, f.counts[k]}
}

// Seen returns how many identifiers have been assigned for the given type and
// key.
func (f *Factory) Seen(typ *Type, key Key) uint {
	return f.counts[factoryKey{typ, key}]
}
