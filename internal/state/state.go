// Package state persists what the user changed at runtime: the collapsed
// toggle and which physical separator plays which role.
package state

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/chess10kp/veil/internal/zone"
)

// State is the on-disk document
type State struct {
	Collapsed bool  `toml:"collapsed"`
	Order     []int `toml:"order"`
}

// Ordering returns the persisted ordering, or identity when it is missing or malformed
func (s State) Ordering() zone.Ordering {
	if len(s.Order) == 0 {
		return zone.Identity()
	}

	o, err := zone.ParseOrdering(s.Order)
	if err != nil {
		log.Printf("[STATE] Ignoring persisted order: %v", err)
	}
	return o
}

// Store reads and writes a State file. It satisfies controller.StateStore.
type Store struct {
	path  string
	mu    sync.Mutex
	state State
}

// Open loads path. A missing file yields the zero state.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	if err := toml.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	return s, nil
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// State returns a copy of the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Order = append([]int(nil), s.state.Order...)
	return st
}

// SaveOrdering persists the role -> slot mapping
func (s *Store) SaveOrdering(o zone.Ordering) error {
	if !o.Valid() {
		return fmt.Errorf("refusing to save invalid ordering %v", o)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Order = o.Ints()
	return s.save()
}

// SaveCollapsed persists the collapsed toggle
func (s *Store) SaveCollapsed(collapsed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Collapsed = collapsed
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	data, err := toml.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return os.Rename(tmp, s.path)
}
