// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import (
	"errors"
	"time"
)

// ErrNoState is returned by State when there is no state for the key.
var ErrNoState = errors.New("no such state")

// ErrNoPass is returned by Pass when there is no pass with the sequence
// number.
var ErrNoPass = errors.New("no such pass")

// Store is an interface satisfied by the storage service.
type Store interface {
	StateStore
	PassStore
}

// StateStore stores element state, keyed by the canonical key of an identity
// path.
type StateStore interface {
	State(key string) ([]byte, error)
	SetState(key string, value []byte) error
	DelState(key string) error
	StateKeys() ([]string, error)
	// PruneState deletes all state whose key is rejected by keep, and returns
	// the number of deleted entries.
	PruneState(keep func(key string) bool) (int, error)
}

// PassStore stores the trace of render passes.
type PassStore interface {
	NextPassSeq() (int, error)
	AddPass(p Pass) (int, error)
	Pass(seq int) (Pass, error)
	// Passes returns all passes with sequence numbers in [from, upto).
	Passes(from, upto int) ([]Pass, error)
}

// Pass is the trace of one render pass.
type Pass struct {
	// Seq is assigned by the store.
	Seq      int           `json:"seq"`
	Session  string        `json:"session"`
	Number   int           `json:"number"`
	Time     time.Time     `json:"time"`
	Duration time.Duration `json:"duration"`
	Creates  int           `json:"creates"`
	Updates  int           `json:"updates"`
	Moves    int           `json:"moves"`
	Destroys int           `json:"destroys"`
	Views    int           `json:"views"`
	Patches  []string      `json:"patches,omitempty"`
}
