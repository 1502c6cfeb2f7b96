package store

import (
	"encoding/binary"
	"fmt"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"

	. "arbor.elv.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize pass trace table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPass))
		return err
	}
}

// NextPassSeq returns the sequence number the next pass will get.
func (s *dbStore) NextPassSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPass))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddPass adds a pass to the trace, and returns its sequence number. The Seq
// field of p is ignored.
func (s *dbStore) AddPass(p Pass) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPass))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		p.Seq = int(seq)
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode pass: %w", err)
		}
		return b.Put(marshalSeq(seq), data)
	})
	return int(seq), err
}

// Pass queries the pass with the given sequence number.
func (s *dbStore) Pass(seq int) (Pass, error) {
	var p Pass
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPass))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoPass
		}
		return unmarshalPass(v, &p)
	})
	return p, err
}

// Passes returns all passes within the specified range.
func (s *dbStore) Passes(from, upto int) ([]Pass, error) {
	var passes []Pass
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPass))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			var p Pass
			if err := unmarshalPass(v, &p); err != nil {
				return err
			}
			passes = append(passes, p)
		}
		return nil
	})
	return passes, err
}

func unmarshalPass(data []byte, p *Pass) error {
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("decode pass: %w", err)
	}
	return nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
