package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Store is the key/value contract the planner persists through. Values are
// opaque bytes; callers own the encoding.
type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("store: key not found")

// Logical keys written by the planner.
const (
	KeyTasks            = "tasks"
	KeyProjects         = "projects"
	KeyBudgetCategories = "budget-categories"
	KeyBudgetExpenses   = "budget-expenses"
	KeyEvents           = "events"
	KeySelectedEvent    = "selected-event"
)

// Keys lists every logical key in load order.
func Keys() []string {
	return []string{KeyTasks, KeyProjects, KeyBudgetCategories, KeyBudgetExpenses, KeyEvents, KeySelectedEvent}
}

const tempDirName = ".tmp"

// OpenDiskv creates a Store backed by diskv, one file per key under
// basePath.
func OpenDiskv(basePath string) (*Diskv, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			TempDir:   filepath.Join(basePath, tempDirName),
			Transform: flatTransform,
		}),
		basePath: basePath,
	}, nil
}

// Diskv is the default on-device Store.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

var _ Store = (*Diskv)(nil)

// BasePath is the directory holding the key files.
func (p *Diskv) BasePath() string {
	return p.basePath
}

func (p *Diskv) Get(key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	// Other processes write the same files, so always go to disk.
	r, err := p.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer r.Close()
	val, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *Diskv) Set(key string, value []byte) error {
	if err := p.d.Write(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *Diskv) Remove(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// flatTransform keeps every key file directly under the base path.
func flatTransform(string) []string {
	return []string{}
}
