// Package store persists material bases across process runs (SPEC_FULL.md
// §12), grounded on the teacher's Database.Open/Close (package/database.go):
// a thin wrapper opening one boltdb file and exposing bucket-scoped
// operations, with the same "open once, defer Close" lifecycle.
package store

import (
	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/nmms-lang/nmms/pkg/base"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

var basesBucket = []byte("bases")

// BoltStore persists named material bases to a single boltdb file, one
// bucket keyed by base name.
type BoltStore struct {
	db *bolt.DB
}

// Open opens (creating if absent) the boltdb file at path.
func Open(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening base store at %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(basesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing base store bucket")
	}
	return &BoltStore{db: db}, nil
}

// Close releases the underlying boltdb file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Save persists base b under name, overwriting any prior value.
func (s *BoltStore) Save(name string, b *base.MaterialBase) error {
	data, err := b.ToDict()
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(basesBucket).Put([]byte(name), data)
	})
}

// Load reconstructs the base stored under name, in the given parsing mode.
func (s *BoltStore) Load(name string, mode sentence.Mode) (*base.MaterialBase, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(basesBucket).Get([]byte(name))
		if v == nil {
			return errors.Errorf("no base named %q in store", name)
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return base.FromDict(data, mode)
}

// Names lists every base name currently stored.
func (s *BoltStore) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(basesBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Delete removes the base stored under name.
func (s *BoltStore) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(basesBucket).Delete([]byte(name))
	})
}
