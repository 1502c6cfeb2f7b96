package store

import (
	bolt "go.etcd.io/bbolt"

	. "arbor.elv.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize state table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketState))
		return err
	}
}

// State gets the state stored under key.
func (s *dbStore) State(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketState))
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNoState
		}
		// v is only valid during the transaction.
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

// SetState stores state under key.
func (s *dbStore) SetState(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketState))
		return b.Put([]byte(key), value)
	})
}

// DelState deletes the state stored under key. Deleting absent state is not
// an error.
func (s *dbStore) DelState(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketState))
		return b.Delete([]byte(key))
	})
}

// StateKeys returns all keys with state, in byte order.
func (s *dbStore) StateKeys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketState))
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// PruneState deletes all state whose key is rejected by keep.
func (s *dbStore) PruneState(keep func(key string) bool) (int, error) {
	var n int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketState))
		// Deleting while iterating with a cursor skips items, so collect the
		// keys first.
		var doomed [][]byte
		err := b.ForEach(func(k, _ []byte) error {
			if !keep(string(k)) {
				doomed = append(doomed, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range doomed {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		n = len(doomed)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
