// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"arbor.elv.sh/pkg/store/storedefs"
)

// TestState tests the state functionality of a StateStore.
func TestState(t *testing.T, store storedefs.StateStore) {
	t.Helper()

	if _, err := store.State("a"); err != storedefs.ErrNoState {
		t.Errorf("State(absent) -> error %v, want %v", err, storedefs.ErrNoState)
	}

	for _, kv := range [][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"a", "4"}} {
		if err := store.SetState(kv[0], []byte(kv[1])); err != nil {
			t.Errorf("SetState(%q) -> error %v", kv[0], err)
		}
	}
	if v, err := store.State("a"); string(v) != "4" || err != nil {
		t.Errorf("State(a) -> (%q, %v), want (4, nil)", v, err)
	}

	if err := store.DelState("b"); err != nil {
		t.Errorf("DelState(b) -> error %v", err)
	}
	if err := store.DelState("absent"); err != nil {
		t.Errorf("DelState(absent) -> error %v", err)
	}
	keys, err := store.StateKeys()
	if err != nil {
		t.Errorf("StateKeys -> error %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, keys); diff != "" {
		t.Errorf("StateKeys (-want +got):\n%s", diff)
	}

	n, err := store.PruneState(func(key string) bool { return key == "c" })
	if n != 1 || err != nil {
		t.Errorf("PruneState -> (%d, %v), want (1, nil)", n, err)
	}
	keys, _ = store.StateKeys()
	if diff := cmp.Diff([]string{"c"}, keys); diff != "" {
		t.Errorf("StateKeys after prune (-want +got):\n%s", diff)
	}
}

// TestPasses tests the pass trace functionality of a PassStore.
func TestPasses(t *testing.T, store storedefs.PassStore) {
	t.Helper()

	if seq, err := store.NextPassSeq(); seq != 1 || err != nil {
		t.Errorf("NextPassSeq -> (%d, %v), want (1, nil)", seq, err)
	}
	if _, err := store.Pass(1); err != storedefs.ErrNoPass {
		t.Errorf("Pass(1) -> error %v, want %v", err, storedefs.ErrNoPass)
	}

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	passes := []storedefs.Pass{
		{Session: "s", Number: 1, Time: now, Creates: 3, Views: 3,
			Patches: []string{"Create /A#1 @0", "Create /B#1 @1", "Create /B#2 @2"}},
		{Session: "s", Number: 2, Time: now, Duration: time.Millisecond, Moves: 1, Views: 3,
			Patches: []string{"Move /B#2 @0"}},
		{Session: "s", Number: 3, Time: now, Views: 3},
	}
	for i, p := range passes {
		seq, err := store.AddPass(p)
		if seq != i+1 || err != nil {
			t.Errorf("AddPass -> (%d, %v), want (%d, nil)", seq, err, i+1)
		}
		passes[i].Seq = i + 1
	}
	if seq, err := store.NextPassSeq(); seq != 4 || err != nil {
		t.Errorf("NextPassSeq -> (%d, %v), want (4, nil)", seq, err)
	}

	p, err := store.Pass(2)
	if err != nil {
		t.Errorf("Pass(2) -> error %v", err)
	}
	if diff := cmp.Diff(passes[1], p); diff != "" {
		t.Errorf("Pass(2) (-want +got):\n%s", diff)
	}

	got, err := store.Passes(2, 10)
	if err != nil {
		t.Errorf("Passes -> error %v", err)
	}
	if diff := cmp.Diff(passes[1:], got); diff != "" {
		t.Errorf("Passes(2, 10) (-want +got):\n%s", diff)
	}
	if got, _ := store.Passes(3, 3); len(got) != 0 {
		t.Errorf("Passes(3, 3) -> %v, want empty", got)
	}
}
