package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandeepkv93/tasktimer/internal/model"
)

const timeLayout = time.RFC3339Nano

// Record is the persisted shape of a task.
type Record struct {
	ID                   uint32     `json:"id"`
	Name                 string     `json:"name"`
	TotalDurationSeconds uint64     `json:"total_duration_seconds"`
	Running              bool       `json:"running"`
	LastRun              *Timestamp `json:"last_run"`
}

// Timestamp writes RFC3339 text and also reads the older
// {"secs_since_epoch":N,"nanos_since_epoch":N} object form.
type Timestamp struct {
	time.Time
}

type epochTimestamp struct {
	Secs  *int64 `json:"secs_since_epoch"`
	Nanos int64  `json:"nanos_since_epoch"`
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.UTC().Format(timeLayout))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var epoch epochTimestamp
		if err := json.Unmarshal(data, &epoch); err != nil {
			return err
		}
		if epoch.Secs == nil {
			return fmt.Errorf("timestamp object missing secs_since_epoch")
		}
		ts.Time = time.Unix(*epoch.Secs, epoch.Nanos).UTC()
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.Parse(timeLayout, raw)
	if err != nil {
		return err
	}
	ts.Time = parsed
	return nil
}

func recordFromTask(t model.Task) Record {
	rec := Record{
		ID:                   t.ID,
		Name:                 t.Name,
		TotalDurationSeconds: t.TotalSeconds,
		Running:              t.Running,
	}
	if t.LastStartedAt != nil {
		rec.LastRun = &Timestamp{Time: *t.LastStartedAt}
	}
	return rec
}

func (r Record) task() (model.Task, error) {
	t := model.Task{
		ID:           r.ID,
		Name:         r.Name,
		TotalSeconds: r.TotalDurationSeconds,
		Running:      r.Running,
	}
	if r.LastRun != nil {
		started := r.LastRun.Time
		t.LastStartedAt = &started
	}
	if err := t.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: task %d: %v", ErrCorrupt, r.ID, err)
	}
	return t, nil
}
