// Package store persists the two device-local collections: the shopping
// cart and the user's personal plant list. Every mutation rewrites the
// whole collection file; every open reads it back in full. There is one
// writer per collection, guarded by a mutex.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	cartFile       = "cart.json"
	userPlantsFile = "user_plants.json"
)

// writeFile serializes v and atomically replaces the collection file.
func writeFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace collection: %w", err)
	}
	return nil
}

// readFile loads the collection file into v; a missing file leaves v
// untouched (fresh install).
func readFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read collection: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse collection: %w", err)
	}
	return nil
}

// Manager opens per-user collection stores under one base directory.
type Manager struct {
	dir string

	mu     sync.Mutex
	carts  map[string]*Cart
	plants map[string]*Plants
}

// NewManager creates the base directory if needed.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create collections dir: %w", err)
	}
	return &Manager{
		dir:    dir,
		carts:  make(map[string]*Cart),
		plants: make(map[string]*Plants),
	}, nil
}

// Cart returns the user's cart store, loading it from disk on first use.
func (m *Manager) Cart(userID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[userID]; ok {
		return c, nil
	}
	dir, err := m.userDir(userID)
	if err != nil {
		return nil, err
	}
	c, err := NewCart(filepath.Join(dir, cartFile))
	if err != nil {
		return nil, err
	}
	m.carts[userID] = c
	return c, nil
}

// Plants returns the user's personal plant store, loading it on first use.
func (m *Manager) Plants(userID string) (*Plants, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.plants[userID]; ok {
		return p, nil
	}
	dir, err := m.userDir(userID)
	if err != nil {
		return nil, err
	}
	p, err := NewPlants(filepath.Join(dir, userPlantsFile))
	if err != nil {
		return nil, err
	}
	m.plants[userID] = p
	return p, nil
}

func (m *Manager) userDir(userID string) (string, error) {
	dir := filepath.Join(m.dir, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create user dir: %w", err)
	}
	return dir, nil
}
