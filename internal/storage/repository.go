package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/tasktimer/internal/model"
	"github.com/sandeepkv93/tasktimer/internal/store"
)

var (
	ErrCorrupt        = errors.New("storage: corrupt task data")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	sqliteFileName = "tasktimer.db"
)

// Repository loads and saves whole category stores. Save is a full overwrite.
type Repository interface {
	Load(ctx context.Context, category store.Category) (map[uint32]model.Task, error)
	Save(ctx context.Context, category store.Category, tasks map[uint32]model.Task) error
	Close() error
}

// Open returns the repository for backend rooted at dir.
func Open(backend, dir string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		return NewFileRepository(dir), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, sqliteFileName))
	default:
		return nil, fmt.Errorf("%w: %q (json, sqlite)", ErrUnknownBackend, backend)
	}
}
