// Package history keeps the queries a user ran and the articles they
// opened in a local bbolt file. A nil *Store is valid and records nothing.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pders01/sift/internal/api"
)

var (
	queriesBucket  = []byte("queries")
	articlesBucket = []byte("articles")
)

type Store struct {
	db         *bolt.DB
	maxEntries int
	now        func() time.Time
}

// Open opens or creates the history database at dbPath. maxEntries caps
// each bucket; zero means unbounded.
func Open(dbPath string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{queriesBucket, articlesBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db, maxEntries: maxEntries, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// RecordQuery stores a successful search. Repeating a query moves it to
// the front. Blank queries are not recorded.
func (s *Store) RecordQuery(query string, total int) error {
	if s == nil {
		return nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(queriesBucket)

		entry := QueryEntry{Query: query}
		if data := b.Get([]byte(query)); data != nil {
			if err := json.Unmarshal(data, &entry); err != nil {
				return err
			}
		}
		entry.Total = total
		entry.Count++
		entry.LastRun = s.now()

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(query), data); err != nil {
			return err
		}
		return trimBucket(b, s.maxEntries, queryTime)
	})
}

// RecentQueries returns up to limit queries, newest first. A limit of
// zero returns all of them.
func (s *Store) RecentQueries(limit int) ([]QueryEntry, error) {
	if s == nil {
		return nil, nil
	}
	var entries []QueryEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(queriesBucket).ForEach(func(_ []byte, v []byte) error {
			var e QueryEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return nil
			}
			entries = append(entries, e)
			return nil
		})
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastRun.After(entries[j].LastRun)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, err
}

// RecordArticle stores an opened article together with the query it was
// opened for.
func (s *Store) RecordArticle(article api.Article, query string) error {
	if s == nil {
		return nil
	}
	entry := ArticleEntry{
		ID:       article.ID,
		Title:    article.DisplayTitle(),
		SiteName: article.OGSiteName,
		PageURL:  article.PageURL,
		Query:    query,
		OpenedAt: s.now(),
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(articlesBucket)
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if err := b.Put(articleKey(article.ID), data); err != nil {
			return err
		}
		return trimBucket(b, s.maxEntries, articleTime)
	})
}

func (s *Store) RecentArticles(limit int) ([]ArticleEntry, error) {
	if s == nil {
		return nil, nil
	}
	var entries []ArticleEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(articlesBucket).ForEach(func(_ []byte, v []byte) error {
			var e ArticleEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return nil
			}
			entries = append(entries, e)
			return nil
		})
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OpenedAt.After(entries[j].OpenedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, err
}

// Trim keeps the newest keep entries of each bucket.
func (s *Store) Trim(keep int) error {
	if s == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := trimBucket(tx.Bucket(queriesBucket), keep, queryTime); err != nil {
			return err
		}
		return trimBucket(tx.Bucket(articlesBucket), keep, articleTime)
	})
}

// Clear removes all history.
func (s *Store) Clear() error {
	if s == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{queriesBucket, articlesBucket} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

type stampFunc func(v []byte) time.Time

func queryTime(v []byte) time.Time {
	var e QueryEntry
	_ = json.Unmarshal(v, &e)
	return e.LastRun
}

func articleTime(v []byte) time.Time {
	var e ArticleEntry
	_ = json.Unmarshal(v, &e)
	return e.OpenedAt
}

func trimBucket(b *bolt.Bucket, keep int, stamp stampFunc) error {
	if keep <= 0 {
		return nil
	}

	type keyed struct {
		key []byte
		at  time.Time
	}
	var all []keyed
	if err := b.ForEach(func(k, v []byte) error {
		all = append(all, keyed{key: append([]byte(nil), k...), at: stamp(v)})
		return nil
	}); err != nil {
		return err
	}
	if len(all) <= keep {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].at.After(all[j].at) })
	for _, k := range all[keep:] {
		if err := b.Delete(k.key); err != nil {
			return err
		}
	}
	return nil
}

func articleKey(id int64) []byte {
	return []byte(strconv.FormatInt(id, 10))
}
