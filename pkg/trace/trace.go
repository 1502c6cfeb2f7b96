// Package trace records a trace of render passes in a pass store.
//
// Each Recorder has its own session ID, so that passes from several runs can
// share one database.
package trace

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"arbor.elv.sh/pkg/logutil"
	"arbor.elv.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[trace] ")

var now = time.Now

// Recorder records passes of one session.
type Recorder struct {
	session string
	store   storedefs.PassStore
	// MaxPatches limits the number of patches recorded for each pass. Passes
	// with more patches only have their counts recorded. A negative value
	// means no limit.
	MaxPatches int
}

// NewRecorder creates a Recorder with a new session ID.
func NewRecorder(store storedefs.PassStore) *Recorder {
	return &Recorder{session: uuid.New().String(), store: store, MaxPatches: 256}
}

// Session returns the session ID.
func (r *Recorder) Session() string { return r.session }

// Record stores p, filling in its session and time.
func (r *Recorder) Record(p storedefs.Pass) error {
	p.Session = r.session
	if p.Time.IsZero() {
		p.Time = now()
	}
	if r.MaxPatches >= 0 && len(p.Patches) > r.MaxPatches {
		logger.Printf("pass %d has %d patches, not recording them", p.Number, len(p.Patches))
		p.Patches = nil
	}
	if _, err := r.store.AddPass(p); err != nil {
		return fmt.Errorf("record pass %d: %w", p.Number, err)
	}
	return nil
}

// Passes returns the passes of this session among the last n passes in the
// store, oldest first.
func (r *Recorder) Passes(n int) ([]storedefs.Pass, error) {
	next, err := r.store.NextPassSeq()
	if err != nil {
		return nil, err
	}
	all, err := r.store.Passes(max(next-n, 1), next)
	if err != nil {
		return nil, err
	}
	passes := all[:0]
	for _, p := range all {
		if p.Session == r.session {
			passes = append(passes, p)
		}
	}
	return passes, nil
}
