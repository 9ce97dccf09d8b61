// Package session implements the session store kbsecret commands operate
// against. Sessions are declared in configuration; each one maps to a bbolt
// bucket (its root) holding one JSON document per record label.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/kbsecret/kbsecret/internal/exitcode"
	"github.com/kbsecret/kbsecret/internal/record"
)

var (
	// ErrNoSuchSession is wrapped when a label is not configured.
	ErrNoSuchSession = errors.New("no such session")
	// ErrNoSuchRecord is wrapped when a session holds no record by a label.
	ErrNoSuchRecord = errors.New("no such record")
	// ErrRecordExists is wrapped when adding over an existing record.
	ErrRecordExists = errors.New("record already exists")
)

// Descriptor is the configured identity of a session.
type Descriptor struct {
	Label string
	Root  string
	Users []string
}

// Store opens configured sessions backed by a single bbolt database.
type Store struct {
	db       *bolt.DB
	sessions map[string]Descriptor
	types    *record.Registry
}

// Open opens or creates the database at path. Records are decoded through
// types, or record.Default when nil.
func Open(path string, sessions []Descriptor, types *record.Registry) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}

	if types == nil {
		types = record.Default
	}
	s := &Store{db: db, sessions: make(map[string]Descriptor, len(sessions)), types: types}
	for _, d := range sessions {
		if d.Root == "" {
			d.Root = d.Label
		}
		s.sessions[d.Label] = d
	}
	return s, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Labels returns the configured session labels, sorted.
func (s *Store) Labels() []string {
	labels := make([]string, 0, len(s.sessions))
	for label := range s.sessions {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Session returns the handle for a configured session.
func (s *Store) Session(label string) (*Session, error) {
	if label == "" {
		return nil, exitcode.Errorf(exitcode.Resolution, "no session label given")
	}
	d, ok := s.sessions[label]
	if !ok {
		return nil, exitcode.Wrap(exitcode.Resolution, fmt.Errorf("%w: %s", ErrNoSuchSession, label))
	}
	return &Session{Descriptor: d, store: s}, nil
}

// Session is a handle on one configured session's records.
type Session struct {
	Descriptor
	store *Store
}

// Labels returns the labels of every record in the session, sorted.
func (s *Session) Labels() ([]string, error) {
	var labels []string
	err := s.store.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(s.Root))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			labels = append(labels, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing records in session %s: %w", s.Label, err)
	}
	return labels, nil
}

// Records decodes every record in the session, in label order.
func (s *Session) Records() ([]*record.Record, error) {
	var records []*record.Record
	err := s.store.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(s.Root))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			r, err := s.store.types.Decode(v)
			if err != nil {
				return fmt.Errorf("record %s: %w", k, err)
			}
			records = append(records, r)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", s.Label, err)
	}
	return records, nil
}

// RecordsOfType returns the session's records of the given type.
func (s *Session) RecordsOfType(typ string) ([]*record.Record, error) {
	all, err := s.Records()
	if err != nil {
		return nil, err
	}
	var out []*record.Record
	for _, r := range all {
		if r.Type() == typ {
			out = append(out, r)
		}
	}
	return out, nil
}

// Has reports whether a record exists under label.
func (s *Session) Has(label string) (bool, error) {
	var found bool
	err := s.store.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(s.Root)); b != nil {
			found = b.Get([]byte(label)) != nil
		}
		return nil
	})
	return found, err
}

// Record loads a single record.
func (s *Session) Record(label string) (*record.Record, error) {
	var data []byte
	err := s.store.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(s.Root))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(label)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", label, err)
	}
	if data == nil {
		return nil, s.missing(label)
	}
	return s.store.types.Decode(data)
}

// Add stores a record. An existing record under the same label is replaced
// only when overwrite is set.
func (s *Session) Add(r *record.Record, overwrite bool) error {
	data, err := r.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", r.Label(), err)
	}
	return s.store.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(s.Root))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.Root, err)
		}
		if !overwrite && b.Get([]byte(r.Label())) != nil {
			return exitcode.Wrap(exitcode.Usage,
				fmt.Errorf("%w in session %s: %s", ErrRecordExists, s.Label, r.Label()))
		}
		return b.Put([]byte(r.Label()), data)
	})
}

// Delete removes a record.
func (s *Session) Delete(label string) error {
	return s.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(s.Root))
		if b == nil || b.Get([]byte(label)) == nil {
			return s.missing(label)
		}
		return b.Delete([]byte(label))
	})
}

func (s *Session) missing(label string) error {
	return exitcode.Wrap(exitcode.Resolution,
		fmt.Errorf("%w in session %s: %s", ErrNoSuchRecord, s.Label, label))
}
