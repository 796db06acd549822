package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docsa/moodle-migrate/internal/models"
)

// Store is the content-addressed file store of a backup: every blob lives at
// files/<first two hash characters>/<hash>.
type Store struct {
	Root string
}

// NewStore returns the store of the backup rooted at backupRoot.
func NewStore(backupRoot string) *Store {
	return &Store{Root: filepath.Join(backupRoot, models.FilesDirname)}
}

// Path returns where the blob for hash would live. It returns "" for hashes
// that cannot name a blob.
func (s *Store) Path(hash string) string {
	if len(hash) < 2 || strings.ContainsAny(hash, `/\`) || strings.Contains(hash, "..") {
		return ""
	}
	return filepath.Join(s.Root, hash[:2], hash)
}

// Resolve returns the blob path for hash and whether a regular file exists there.
// Content is not re-hashed.
func (s *Store) Resolve(hash string) (string, bool) {
	p := s.Path(hash)
	if p == "" {
		return "", false
	}
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return p, false
	}
	return p, true
}

// Remove deletes the blob for hash. A blob that is already gone is not an error.
func (s *Store) Remove(hash string) error {
	p := s.Path(hash)
	if p == "" {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove blob %s: %w", hash, err)
	}
	return nil
}

// PruneEmptyShards removes shard directories that no longer hold any entry and
// returns how many were removed.
func (s *Store) PruneEmptyShards() (int, error) {
	shards, err := s.shards()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, shard := range shards {
		dir := filepath.Join(s.Root, shard)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return removed, fmt.Errorf("read shard %s: %w", shard, err)
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			return removed, fmt.Errorf("remove shard %s: %w", shard, err)
		}
		removed++
	}
	return removed, nil
}

// shards lists the two-hex-character directories of the store, sorted.
func (s *Store) shards() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && isShardName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func isShardName(name string) bool {
	if len(name) != 2 {
		return false
	}
	for _, r := range name {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}
