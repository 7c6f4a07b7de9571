// Package storage keeps an archive of layout documents on the local
// filesystem: every import and export passes through here so the shop has
// a recents list to fall back on after a bad customization.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tailorpro/backend/internal/models"
)

// Store defines the interface for the layout archive.
type Store interface {
	SaveBytes(name, status string, data []byte) (*models.FileInfo, error)
	Get(id string) (*models.FileInfo, error)
	ReadBytes(id string) ([]byte, error)
	List(limit int) ([]*models.FileInfo, error)
	Delete(id string) error
	Rename(id string, newName string) (*models.FileInfo, error)
}

// LocalStore implements Store using the local filesystem. The index lives
// in memory; archived documents live as one JSON file per id.
type LocalStore struct {
	mu         sync.RWMutex
	archiveDir string
	files      map[string]*models.FileInfo
}

// NewLocalStore creates a LocalStore rooted at archiveDir.
func NewLocalStore(archiveDir string) (*LocalStore, error) {
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	return &LocalStore{
		archiveDir: archiveDir,
		files:      make(map[string]*models.FileInfo),
	}, nil
}

// SaveBytes archives one layout document. Status records which direction
// it travelled ("imported" or "exported").
func (s *LocalStore) SaveBytes(name, status string, data []byte) (*models.FileInfo, error) {
	id := uuid.New().String()
	path := filepath.Join(s.archiveDir, id+".json")

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing layout file: %w", err)
	}

	info := &models.FileInfo{
		ID:         id,
		Name:       name,
		Size:       int64(len(data)),
		UploadedAt: time.Now(),
		Status:     status,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[id] = info

	return info, nil
}

// Get retrieves archive metadata by ID.
func (s *LocalStore) Get(id string) (*models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", id)
	}

	return info, nil
}

// ReadBytes returns an archived document's contents.
func (s *LocalStore) ReadBytes(id string) ([]byte, error) {
	s.mu.RLock()
	_, ok := s.files[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("file not found: %s", id)
	}

	data, err := os.ReadFile(filepath.Join(s.archiveDir, id+".json"))
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}
	return data, nil
}

// List returns the most recent archive entries.
func (s *LocalStore) List(limit int) ([]*models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*models.FileInfo
	for _, info := range s.files {
		list = append(list, info)
	}

	// Sort by UploadedAt desc
	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.After(list[j].UploadedAt)
	})

	if len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

// Delete removes an entry from the archive.
func (s *LocalStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return fmt.Errorf("file not found: %s", id)
	}

	path := filepath.Join(s.archiveDir, id+".json")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file: %w", err)
	}

	delete(s.files, id)
	return nil
}

// Rename updates the display name of an archive entry.
func (s *LocalStore) Rename(id string, newName string) (*models.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", id)
	}

	info.Name = newName
	return info, nil
}
