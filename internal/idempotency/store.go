package idempotency

import (
	"time"

	"github.com/boltdb/bolt"
)

var keysBucket = []byte("payment_keys")

// Store is a replay guard for payment submission. The ledger is append-only,
// so a client retry with the same Idempotency-Key must not append a second
// row; keys are persisted so the guard survives restarts.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the bolt file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(keysBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Seen reports whether the key was already consumed by a successful
// submission. The empty key is never seen; requests without a key are not
// deduplicated.
func (s *Store) Seen(key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	var seen bool
	err := s.db.View(func(tx *bolt.Tx) error {
		seen = tx.Bucket(keysBucket).Get([]byte(key)) != nil
		return nil
	})
	return seen, err
}

// MarkUsed records the key once the guarded operation has succeeded. Checking
// and marking are separate calls so a failed submission leaves the key free
// for the client's retry.
func (s *Store) MarkUsed(key string) error {
	if key == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(keysBucket).Put([]byte(key), []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}
