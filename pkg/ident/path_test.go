package ident

import "testing"

func TestPath_KeyIsCanonical(t *testing.T) {
	slash := NewType("a/b")
	paths := []Path{
		{},
		{{typeA, NoKey, 1}},
		{{typeA, NoKey, 1}, {typeA, NoKey, 1}},
		{{typeA, K("x"), 1}},
		{{typeA, K(`x"#1`), 1}},
		{{typeA, K("x"), 1}, {typeB, NoKey, 2}},
		{{slash, NoKey, 1}},
		{{slash, K("/"), 1}},
	}
	seen := make(map[string]Path)
	for _, p := range paths {
		k := p.Key()
		if q, ok := seen[k]; ok {
			t.Errorf("paths %v and %v share key %q", p, q, k)
		}
		seen[k] = p
	}
}

func TestPath_AppendDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = Identifier{typeA, NoKey, 1}
	p1 := base.Append(Identifier{typeB, NoKey, 1})
	p2 := base.Append(Identifier{typeB, NoKey, 2})
	if p1.Equal(p2) {
		t.Errorf("Append aliased the receiver: %v %v", p1, p2)
	}
	if !p1.HasPrefix(base) || !p2.HasPrefix(base) {
		t.Errorf("HasPrefix -> false, want true")
	}
	if p1.Last() != (Identifier{typeB, NoKey, 1}) {
		t.Errorf("Last -> %v", p1.Last())
	}
}

func TestPath_String(t *testing.T) {
	p := Path{{typeA, NoKey, 1}, {typeB, K("k"), 2}}
	if got, want := p.String(), `/A#1/B/"k"#2`; got != want {
		t.Errorf("String() -> %q, want %q", got, want)
	}
	if got := (Path{}).String(); got != "/" {
		t.Errorf("String() of empty path -> %q, want %q", got, "/")
	}
}
