// Package storage provides the persistent blob store backing the cache and
// the user preference data. Keys map to JSON-serialized values with no
// atomicity guarantees beyond a single bbolt transaction.
package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const (
	dbFileMode = 0600
	dbDirMode  = 0755
)

var blobBucket = []byte("blobs")

// Store defines the interface for blob persistence. Absent keys are not an
// error: Get returns (nil, nil).
type Store interface {
	// Get retrieves the raw value for key, or nil when absent
	Get(key string) ([]byte, error)
	// Set stores the raw value under key
	Set(key string, value []byte) error
	// Delete removes key; deleting an absent key is not an error
	Delete(key string) error
	// Keys lists all keys beginning with prefix
	Keys(prefix string) ([]string, error)
	// Close closes the underlying store
	Close() error
}

// BoltStore implements Store on a single-file bbolt database.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) the blob store at path.
func OpenBolt(path string) (*BoltStore, error) {
	if path == "" {
		path = filepath.Join(".", "vault.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), dbDirMode); err != nil {
		return nil, errors.Wrap(err, "failed to create store directory")
	}

	db, err := bolt.Open(path, dbFileMode, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open bolt store")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(blobBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create blob bucket")
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(blobBucket).Get([]byte(key))
		if v != nil {
			// bbolt memory is only valid inside the transaction
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", key)
	}
	return value, nil
}

func (s *BoltStore) Set(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blobBucket).Put([]byte(key), value)
	})
	if err != nil {
		return errors.Wrapf(err, "failed to write %q", key)
	}
	return nil
}

func (s *BoltStore) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blobBucket).Delete([]byte(key))
	})
	if err != nil {
		return errors.Wrapf(err, "failed to delete %q", key)
	}
	return nil
}

func (s *BoltStore) Keys(prefix string) ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(blobBucket).Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list keys with prefix %q", prefix)
	}
	return keys, nil
}
