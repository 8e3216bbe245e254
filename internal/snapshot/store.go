// Package snapshot persists the last-synced state of every managed block:
// the hash of the canonical content that was written and the hash of the
// body as written. The pair is what lets the reconciler classify drift
// without keeping a third historical copy of the body itself.
package snapshot

import (
	"errors"
	"fmt"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/rulesync/internal/fsutil"
)

// FileName is the store's file name inside the source directory.
const FileName = "state.yaml"

// storeVersion guards the on-disk format.
const storeVersion = 1

// Entry records what was written for one block during the last
// successful sync. Prefix is stored in the underscore metadata form.
type Entry struct {
	ID            string `yaml:"id"`
	Prefix        string `yaml:"prefix"`
	CanonicalHash string `yaml:"canonical_hash"`
	BodyHash      string `yaml:"body_hash"`
}

// Store holds snapshot entries keyed by target path, block id, and
// metadata prefix. It is not safe for concurrent mutation; the engine
// merges worker results into it sequentially.
type Store struct {
	path    string
	entries map[string]map[[2]string]Entry // target path → (id, prefix) → entry
}

// document is the YAML file layout.
type document struct {
	Version int                `yaml:"version"`
	Targets map[string][]Entry `yaml:"targets"`
}

// Load reads the store at path. A missing file yields an empty store,
// since the first run has nothing recorded yet.
func Load(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]map[[2]string]Entry),
	}

	data, err := fsutil.Read(path)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			return s, nil
		}
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot store %s: %w", path, err)
	}
	if doc.Version != 0 && doc.Version != storeVersion {
		return nil, fmt.Errorf("snapshot store %s has unsupported version %d", path, doc.Version)
	}

	for target, entries := range doc.Targets {
		m := make(map[[2]string]Entry, len(entries))
		for _, e := range entries {
			m[[2]string{e.ID, e.Prefix}] = e
		}
		s.entries[target] = m
	}

	return s, nil
}

// Get returns the entry for (target, id, prefix), or nil if none exists.
func (s *Store) Get(target, id, prefix string) *Entry {
	m, ok := s.entries[target]
	if !ok {
		return nil
	}
	e, ok := m[[2]string{id, prefix}]
	if !ok {
		return nil
	}
	return &e
}

// ReplaceTarget swaps the entries for one target wholesale. Called after
// a target's rewrite has been renamed into place, so the store and the
// file never disagree after a successful run.
func (s *Store) ReplaceTarget(target string, entries []Entry) {
	if len(entries) == 0 {
		delete(s.entries, target)
		return
	}
	m := make(map[[2]string]Entry, len(entries))
	for _, e := range entries {
		m[[2]string{e.ID, e.Prefix}] = e
	}
	s.entries[target] = m
}

// Save writes the store atomically.
func (s *Store) Save() error {
	doc := document{
		Version: storeVersion,
		Targets: make(map[string][]Entry, len(s.entries)),
	}
	for target, m := range s.entries {
		entries := make([]Entry, 0, len(m))
		for _, e := range m {
			entries = append(entries, e)
		}
		// Stable file output regardless of map order.
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].ID != entries[j].ID {
				return entries[i].ID < entries[j].ID
			}
			return entries[i].Prefix < entries[j].Prefix
		})
		doc.Targets[target] = entries
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling snapshot store: %w", err)
	}

	return fsutil.WriteAtomic(s.path, data, 0o644)
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}
