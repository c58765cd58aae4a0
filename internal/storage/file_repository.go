package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/tasktimer/internal/model"
	"github.com/sandeepkv93/tasktimer/internal/store"
)

// FileRepository keeps one pretty-printed JSON file per category in dir.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

func (r *FileRepository) Path(category store.Category) string {
	return filepath.Join(r.dir, string(category)+".json")
}

func (r *FileRepository) Load(_ context.Context, category store.Category) (map[uint32]model.Task, error) {
	out := make(map[uint32]model.Task)
	path := r.Path(category)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}

	var records map[uint32]Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	for key, rec := range records {
		if rec.ID != key {
			return nil, fmt.Errorf("%w: %s: key %d holds task %d", ErrCorrupt, path, key, rec.ID)
		}
		task, err := rec.task()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out[key] = task
	}
	return out, nil
}

func (r *FileRepository) Save(_ context.Context, category store.Category, tasks map[uint32]model.Task) error {
	if r.dir != "" && r.dir != "." {
		if err := os.MkdirAll(r.dir, 0o755); err != nil {
			return err
		}
	}
	records := make(map[uint32]Record, len(tasks))
	for id, task := range tasks {
		records[id] = recordFromTask(task)
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	path := r.Path(category)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (r *FileRepository) Close() error { return nil }
