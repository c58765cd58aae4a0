package store

import (
	"time"

	"github.com/sandeepkv93/tasktimer/internal/model"
)

type ListOptions struct {
	All       bool
	Timestamp bool
	Base      bool
}

type ListEntry struct {
	Task    model.Task
	Current uint64
	Base    uint64
}

// Listing is the selected tasks in ascending id order with their summed
// current durations, computed against a single instant.
type Listing struct {
	Options ListOptions
	At      time.Time
	Entries []ListEntry
	Total   uint64
}

func (s *Store) List(opts ListOptions) Listing {
	now := s.now()
	out := Listing{Options: opts, At: now, Entries: make([]ListEntry, 0)}
	for _, task := range s.Sorted() {
		if !task.Running && !opts.All {
			continue
		}
		current := task.CurrentDuration(now)
		out.Entries = append(out.Entries, ListEntry{Task: task, Current: current, Base: task.TotalSeconds})
		out.Total = model.AddSeconds(out.Total, current)
	}
	return out
}

func (l Listing) Empty() bool { return len(l.Entries) == 0 }

func (l Listing) EmptyMessage() string {
	if l.Options.All {
		return "There are no tasks."
	}
	return "There are no running tasks."
}
