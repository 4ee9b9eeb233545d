// Package localcache is the durable fallback store backing the resilient
// gateway. It keeps the three entity collections as JSON blobs in a bbolt
// file, one bucket per collection, each collection written as a single
// atomic value. Reads and writes always cover the whole collection — there
// are no partial updates — and no validation happens here; callers pass
// well-formed collections.
package localcache

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pecc/timetracking/internal/core/domain"
)

var (
	bucketUsers       = []byte("users")
	bucketEntries     = []byte("time_entries")
	bucketSubmissions = []byte("contractor_submissions")
)

// collectionKey is the single key each bucket stores its collection under.
var collectionKey = []byte("all")

// Store is the bbolt-backed local cache adapter.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the cache file at path and seeds each collection
// with built-in defaults when, and only when, it is absent. Existing data
// is never overwritten.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("localcache open: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := seedBucket(tx, bucketUsers, domain.SeedUsers()); err != nil {
			return err
		}
		if err := seedBucket(tx, bucketEntries, domain.SeedTimeEntries()); err != nil {
			return err
		}
		return seedBucket(tx, bucketSubmissions, domain.SeedSubmissions())
	})
}

func seedBucket[T any](tx *bolt.Tx, name []byte, defaults []T) error {
	b, err := tx.CreateBucketIfNotExists(name)
	if err != nil {
		return fmt.Errorf("localcache: create bucket %s: %w", name, err)
	}
	if b.Get(collectionKey) != nil {
		return nil
	}
	data, err := json.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("localcache: seed %s: %w", name, err)
	}
	return b.Put(collectionKey, data)
}

// Users returns the full users collection.
func (s *Store) Users() ([]domain.User, error) {
	return read[domain.User](s, bucketUsers)
}

// SetUsers replaces the users collection atomically.
func (s *Store) SetUsers(users []domain.User) error {
	return write(s, bucketUsers, users)
}

// TimeEntries returns the full time entries collection.
func (s *Store) TimeEntries() ([]domain.TimeEntry, error) {
	return read[domain.TimeEntry](s, bucketEntries)
}

// SetTimeEntries replaces the time entries collection atomically.
func (s *Store) SetTimeEntries(entries []domain.TimeEntry) error {
	return write(s, bucketEntries, entries)
}

// Submissions returns the full contractor submissions collection.
func (s *Store) Submissions() ([]domain.ContractorSubmission, error) {
	return read[domain.ContractorSubmission](s, bucketSubmissions)
}

// SetSubmissions replaces the contractor submissions collection atomically.
func (s *Store) SetSubmissions(subs []domain.ContractorSubmission) error {
	return write(s, bucketSubmissions, subs)
}

func read[T any](s *Store, name []byte) ([]T, error) {
	var out []T
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(name)
		if b == nil {
			return fmt.Errorf("localcache: bucket %s missing", name)
		}
		data := b.Get(collectionKey)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &out)
	})
	if err != nil {
		return nil, fmt.Errorf("localcache read %s: %w", name, err)
	}
	return out, nil
}

func write[T any](s *Store, name []byte, collection []T) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("localcache write %s: %w", name, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(name)
		if b == nil {
			return fmt.Errorf("bucket %s missing", name)
		}
		return b.Put(collectionKey, data)
	})
	if err != nil {
		return fmt.Errorf("localcache write %s: %w", name, err)
	}
	return nil
}
