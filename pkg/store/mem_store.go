package store

import (
	"sort"
	"sync"

	. "arbor.elv.sh/pkg/store/storedefs"
)

// NewMemStore returns a Store that keeps everything in memory. It is used
// when no database is configured.
func NewMemStore() DBStore {
	return &memStore{state: make(map[string][]byte)}
}

type memStore struct {
	mutex  sync.Mutex
	state  map[string][]byte
	passes []Pass
}

func (s *memStore) State(key string) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	v, ok := s.state[key]
	if !ok {
		return nil, ErrNoState
	}
	return append([]byte(nil), v...), nil
}

func (s *memStore) SetState(key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state[key] = append([]byte(nil), value...)
	return nil
}

func (s *memStore) DelState(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.state, key)
	return nil
}

func (s *memStore) StateKeys() ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	keys := make([]string, 0, len(s.state))
	for k := range s.state {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *memStore) PruneState(keep func(key string) bool) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	n := 0
	for k := range s.state {
		if !keep(k) {
			delete(s.state, k)
			n++
		}
	}
	return n, nil
}

func (s *memStore) NextPassSeq() (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.passes) + 1, nil
}

func (s *memStore) AddPass(p Pass) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	p.Seq = len(s.passes) + 1
	s.passes = append(s.passes, p)
	return p.Seq, nil
}

func (s *memStore) Pass(seq int) (Pass, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if seq < 1 || seq > len(s.passes) {
		return Pass{}, ErrNoPass
	}
	return s.passes[seq-1], nil
}

func (s *memStore) Passes(from, upto int) ([]Pass, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	from = max(from, 1)
	upto = min(upto, len(s.passes)+1)
	if from >= upto {
		return nil, nil
	}
	return append([]Pass(nil), s.passes[from-1:upto-1]...), nil
}

func (s *memStore) Close() error { return nil }
