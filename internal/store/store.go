// Package store persists learned keywords in a bolt database under the
// data root. Writes are idempotent: inserting an existing keyword is a
// benign no-op, matching the learning loop's semantics. Callers must
// reload the in-memory categorizer table / recurring set after writes.
package store

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
	"github.com/osadchistudio/family-finance-sub001/internal/textnorm"
)

// FileName is the keyword database file under the data root.
const FileName = "keywords.db"

var (
	categoryBucket  = []byte("category_keywords")
	recurringBucket = []byte("recurring_keywords")
)

// Store wraps the bolt database holding learned keywords.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the keyword database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening keyword store %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{categoryBucket, recurringBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating keyword buckets")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return errors.Wrap(s.db.Close(), "closing keyword store")
}

// CategoryKeywords returns all stored category keywords.
func (s *Store) CategoryKeywords() ([]model.CategoryKeyword, error) {
	var out []model.CategoryKeyword
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(categoryBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var kw model.CategoryKeyword
			dec := gob.NewDecoder(bytes.NewReader(v))
			if err := dec.Decode(&kw); err != nil {
				return errors.Wrapf(err, "decoding keyword %q", k)
			}
			out = append(out, kw)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "reading category keywords")
	}
	return out, nil
}

// PutCategoryKeyword stores a keyword entry. Returns false when the
// (keyword, category) pair already exists, leaving the stored entry
// untouched.
func (s *Store) PutCategoryKeyword(kw model.CategoryKeyword) (bool, error) {
	kw.Keyword = textnorm.Normalize(kw.Keyword)
	if kw.Keyword == "" || kw.CategoryID == "" {
		return false, errors.New("keyword and category are required")
	}
	key := categoryKeywordKey(kw)

	added := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(categoryBucket)
		if b.Get(key) != nil {
			return nil
		}
		var val bytes.Buffer
		if err := gob.NewEncoder(&val).Encode(kw); err != nil {
			return errors.Wrapf(err, "encoding keyword %q", kw.Keyword)
		}
		added = true
		return b.Put(key, val.Bytes())
	})
	if err != nil {
		return false, errors.Wrapf(err, "storing keyword %q", kw.Keyword)
	}
	return added, nil
}

// RecurringKeywords returns all stored recurring keywords.
func (s *Store) RecurringKeywords() ([]model.RecurringKeyword, error) {
	var out []model.RecurringKeyword
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(recurringBucket).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			out = append(out, model.RecurringKeyword{Keyword: string(k)})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "reading recurring keywords")
	}
	return out, nil
}

// PutRecurringKeyword stores a recurring keyword. Returns false when it
// already exists.
func (s *Store) PutRecurringKeyword(kw model.RecurringKeyword) (bool, error) {
	keyword := textnorm.Normalize(kw.Keyword)
	if keyword == "" {
		return false, errors.New("keyword is required")
	}

	added := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(recurringBucket)
		if b.Get([]byte(keyword)) != nil {
			return nil
		}
		added = true
		return b.Put([]byte(keyword), []byte{1})
	})
	if err != nil {
		return false, errors.Wrapf(err, "storing recurring keyword %q", keyword)
	}
	return added, nil
}

// DeleteRecurringKeyword removes a recurring keyword. Returns false
// when it was not stored.
func (s *Store) DeleteRecurringKeyword(kw model.RecurringKeyword) (bool, error) {
	keyword := textnorm.Normalize(kw.Keyword)

	removed := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(recurringBucket)
		if b.Get([]byte(keyword)) == nil {
			return nil
		}
		removed = true
		return b.Delete([]byte(keyword))
	})
	if err != nil {
		return false, errors.Wrapf(err, "deleting recurring keyword %q", keyword)
	}
	return removed, nil
}

func categoryKeywordKey(kw model.CategoryKeyword) []byte {
	return []byte(kw.Keyword + "|" + kw.CategoryID)
}
