// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danielhkuo/chamber-stats/models"
)

var (
	ErrNoSource  = errors.New("no initiative source configured")
	ErrReadOnly  = errors.New("initiative source is read-only")
	ErrEmptyPath = errors.New("data file path is empty")
	ErrNotFound  = errors.New("initiative not found")
)

// Source supplies the ordered initiative dataset
type Source interface {
	Initiatives(ctx context.Context) ([]models.Initiative, error)
}

// Finder looks up a single initiative without loading the dataset
type Finder interface {
	Initiative(ctx context.Context, id string) (models.Initiative, error)
}

// Importer accepts new or updated initiatives
type Importer interface {
	Save(ctx context.Context, initiatives []models.Initiative) error
}

// ReadJSON validates and decodes a JSON array of initiatives
func ReadJSON(r io.Reader) ([]models.Initiative, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read initiatives: %w", err)
	}
	if err := ValidateJSON(raw); err != nil {
		return nil, err
	}

	var initiatives []models.Initiative
	if err := json.Unmarshal(raw, &initiatives); err != nil {
		return nil, fmt.Errorf("failed to decode initiatives: %w", err)
	}
	if initiatives == nil {
		initiatives = []models.Initiative{}
	}
	return initiatives, nil
}

// LoadFile reads a JSON initiative file
func LoadFile(path string) ([]models.Initiative, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	return ReadJSON(f)
}

// FileStore serves initiatives from a JSON file, re-read on every call so
// edits show up without a restart
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Initiatives(ctx context.Context) ([]models.Initiative, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(s.path)
}
