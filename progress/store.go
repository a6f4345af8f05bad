// Package progress persists the set of collected memory fragments across
// loop resets and process restarts. The on-disk format is a single JSON
// document: the collected fragment ids plus the chamber's total fragment
// count, mirroring what the prototype kept in local key-value storage.
package progress

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// snapshot is the JSON document written to disk.
type snapshot struct {
	CollectedIDs   []int `json:"collectedIds"`
	TotalFragments int   `json:"totalFragments"`
}

// Store is a file-backed fragment progress store. Not safe for concurrent
// use; the simulation owns it from a single goroutine.
type Store struct {
	path      string
	logger    *slog.Logger
	collected map[int]bool
	total     int
}

func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:      path,
		logger:    logger,
		collected: make(map[int]bool),
	}
}

// Load reads progress from disk. A missing file means a fresh start.
// Malformed JSON is logged and progress resets to empty; it is never an
// error, matching the prototype's recovery behavior.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("progress file unreadable, starting empty",
				"path", s.path, "error", err)
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("progress file corrupted, resetting",
			"path", s.path, "error", err)
		s.collected = make(map[int]bool)
		s.total = 0
		return
	}

	s.collected = make(map[int]bool, len(snap.CollectedIDs))
	for _, id := range snap.CollectedIDs {
		s.collected[id] = true
	}
	s.total = snap.TotalFragments
}

// Save writes progress atomically (tmp file + rename).
func (s *Store) Save() error {
	snap := snapshot{
		CollectedIDs:   s.sortedIDs(),
		TotalFragments: s.total,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create progress directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp progress: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace progress: %w", err)
	}
	return nil
}

// Collect records a fragment id. Returns false when it was already
// collected; re-collection is idempotent.
func (s *Store) Collect(id int) bool {
	if s.collected[id] {
		return false
	}
	s.collected[id] = true
	return true
}

func (s *Store) IsCollected(id int) bool {
	return s.collected[id]
}

func (s *Store) Count() int {
	return len(s.collected)
}

func (s *Store) Total() int {
	return s.total
}

// SetTotal records the chamber's fragment count for the saved document.
func (s *Store) SetTotal(n int) {
	s.total = n
}

// Reset clears all collected fragments in memory. Callers decide whether to
// Save afterwards.
func (s *Store) Reset() {
	s.collected = make(map[int]bool)
}

func (s *Store) sortedIDs() []int {
	ids := make([]int, 0, len(s.collected))
	for id := range s.collected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
