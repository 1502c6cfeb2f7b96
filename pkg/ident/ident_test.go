package ident

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	typeA = NewType("A")
	typeB = NewType("B")
)

func TestIdentifier_Equality(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Identifier
		equal bool
	}{
		{"same unkeyed", Identifier{typeA, NoKey, 0}, Identifier{typeA, NoKey, 0}, true},
		{"same keyed", Identifier{typeA, K("aKey"), 0}, Identifier{typeA, K("aKey"), 0}, true},
		{"different type", Identifier{typeA, NoKey, 0}, Identifier{typeB, NoKey, 0}, false},
		{"different occurrence", Identifier{typeA, NoKey, 0}, Identifier{typeA, NoKey, 1}, false},
		{"keyed vs unkeyed", Identifier{typeA, NoKey, 0}, Identifier{typeA, K("aKey"), 0}, false},
		{"empty key vs no key", Identifier{typeA, NoKey, 0}, Identifier{typeA, K(""), 0}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.a == test.b; got != test.equal {
				t.Errorf("%v == %v -> %v, want %v", test.a, test.b, got, test.equal)
			}
		})
	}
}

func TestNewType_SameNameIsDistinct(t *testing.T) {
	a1, a2 := NewType("Same"), NewType("Same")
	if (Identifier{a1, NoKey, 1}) == (Identifier{a2, NoKey, 1}) {
		t.Errorf("identifiers with distinct type tokens compare equal")
	}
	p1, p2 := Path{{a1, NoKey, 1}}, Path{{a2, NoKey, 1}}
	if p1.Key() == p2.Key() {
		t.Errorf("paths with distinct type tokens have the same key %q", p1.Key())
	}
}

func TestFactory(t *testing.T) {
	var f Factory
	got := []Identifier{
		f.Identifier(typeA, NoKey),
		f.Identifier(typeA, NoKey),
		f.Identifier(typeA, K("aKey")),
		f.Identifier(typeA, K("aKey")),
		f.Identifier(typeB, NoKey),
		f.Identifier(typeB, NoKey),
		f.Identifier(typeB, K("aKey")),
		f.Identifier(typeB, K("aKey")),
	}
	want := []Identifier{
		{typeA, NoKey, 1},
		{typeA, NoKey, 2},
		{typeA, K("aKey"), 1},
		{typeA, K("aKey"), 2},
		{typeB, NoKey, 1},
		{typeB, NoKey, 2},
		{typeB, K("aKey"), 1},
		{typeB, K("aKey"), 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("identifiers (-want +got):\n%s", diff)
	}
	if n := f.Seen(typeA, K("aKey")); n != 2 {
		t.Errorf("Seen -> %d, want 2", n)
	}
}

type decl struct {
	typ *Type
	key Key
}

func identify(decls []decl) []Identifier {
	var f Factory
	ids := make([]Identifier, len(decls))
	for i, d := range decls {
		ids[i] = f.Identifier(d.typ, d.key)
	}
	return ids
}

func TestFactory_OccurrencesFollowDeclaredOrder(t *testing.T) {
	decls := []decl{{typeA, NoKey}, {typeB, NoKey}, {typeA, NoKey}, {typeB, K("k")}, {typeA, NoKey}}
	got := identify(decls)
	want := []Identifier{
		{typeA, NoKey, 1}, {typeB, NoKey, 1}, {typeA, NoKey, 2},
		{typeB, K("k"), 1}, {typeA, NoKey, 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("identifiers (-want +got):\n%s", diff)
	}
	// A fresh factory reproduces the same identifiers.
	if diff := cmp.Diff(got, identify(decls)); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
}

func TestFactory_InsertingUnrelatedSiblingKeepsIdentity(t *testing.T) {
	before := identify([]decl{{typeA, NoKey}, {typeA, NoKey}})
	after := identify([]decl{{typeB, NoKey}, {typeA, NoKey}, {typeB, NoKey}, {typeA, NoKey}})
	if before[0] != after[1] || before[1] != after[3] {
		t.Errorf("identities changed: before %v, after %v", before, after)
	}
}

func TestFactory_DuplicateKeysStayDistinct(t *testing.T) {
	label := NewType("Label")
	ids := identify([]decl{{label, K("dup")}, {label, K("dup")}})
	want := []Identifier{{label, K("dup"), 1}, {label, K("dup"), 2}}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("identifiers (-want +got):\n%s", diff)
	}
}

func TestIdentifier_String(t *testing.T) {
	row := NewType("Row")
	tests := []struct {
		id   Identifier
		want string
	}{
		{Identifier{row, NoKey, 1}, "Row#1"},
		{Identifier{row, K("a"), 2}, `Row/"a"#2`},
	}
	for _, test := range tests {
		if got := test.id.String(); got != test.want {
			t.Errorf("String() -> %q, want %q", got, test.want)
		}
	}
}
