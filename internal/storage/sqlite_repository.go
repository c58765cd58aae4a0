package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/tasktimer/internal/model"
	"github.com/sandeepkv93/tasktimer/internal/store"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context, category store.Category) (map[uint32]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, total_duration_seconds, running, last_run
		FROM tasks WHERE category = ? ORDER BY id ASC`, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint32]model.Task)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out[task.ID] = task
	}
	return out, rows.Err()
}

// Save replaces every row of the category in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, category store.Category, tasks map[uint32]model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE category = ?`, string(category)); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (category, id, name, total_duration_seconds, running, last_run)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, task := range tasks {
		if err := task.Validate(); err != nil {
			return fmt.Errorf("storage: task %d: %w", id, err)
		}
		if _, err := stmt.ExecContext(ctx,
			string(category), int64(id), task.Name, int64(task.TotalSeconds), boolInt(task.Running), nullTime(task.LastStartedAt),
		); err != nil {
			return fmt.Errorf("insert task %d: %w", id, err)
		}
	}
	return tx.Commit()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(timeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(timeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var id, total int64
	var running int
	var lastRun sql.NullString
	var out model.Task
	if err := s.Scan(&id, &out.Name, &total, &running, &lastRun); err != nil {
		return model.Task{}, err
	}
	if id < 0 || id > 1<<32-1 || total < 0 {
		return model.Task{}, fmt.Errorf("%w: task row %d out of range", ErrCorrupt, id)
	}
	started, err := parseNullableTime(lastRun)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: task %d last_run: %v", ErrCorrupt, id, err)
	}
	out.ID = uint32(id)
	out.TotalSeconds = uint64(total)
	out.Running = running == 1
	out.LastStartedAt = started
	if err := out.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: task %d: %v", ErrCorrupt, id, err)
	}
	return out, nil
}
