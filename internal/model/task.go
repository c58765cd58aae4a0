package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrAlreadyRunning       = errors.New("model: task already running")
	ErrNotRunning           = errors.New("model: task not running")
	ErrTaskBusy             = errors.New("model: task is running")
	ErrInsufficientDuration = errors.New("model: insufficient duration")
	ErrDurationOverflow     = errors.New("model: duration exceeds the maximum task total")
)

// MaxTotalSeconds bounds a task total so every backend can store it as a
// signed 64-bit integer.
const MaxTotalSeconds uint64 = math.MaxInt64

// Task is a named timer. TotalSeconds holds committed time only; time since
// LastStartedAt is added on top while Running is set.
type Task struct {
	ID            uint32
	Name          string
	TotalSeconds  uint64
	Running       bool
	LastStartedAt *time.Time
}

// NewTask builds a stopped task, or a running one started at now.
func NewTask(id uint32, name string, start bool, now time.Time) Task {
	t := Task{ID: id, Name: name}
	if start {
		t.Running = true
		t.LastStartedAt = &now
	}
	return t
}

func (t Task) Validate() error {
	if t.Running && t.LastStartedAt == nil {
		return errors.New("model: running task has no start time")
	}
	if t.TotalSeconds > MaxTotalSeconds {
		return fmt.Errorf("model: total %d exceeds %d seconds", t.TotalSeconds, MaxTotalSeconds)
	}
	return nil
}

func (t *Task) Start(now time.Time) error {
	if t.Running {
		return ErrAlreadyRunning
	}
	t.Running = true
	t.LastStartedAt = &now
	return nil
}

// Stop commits the time elapsed since the last start into the total.
func (t *Task) Stop(now time.Time) error {
	if !t.Running {
		return ErrNotRunning
	}
	t.TotalSeconds = AddSeconds(t.TotalSeconds, t.Elapsed(now))
	t.Running = false
	return nil
}

// Cancel stops the timer and drops the time elapsed since the last start.
func (t *Task) Cancel() error {
	if !t.Running {
		return ErrNotRunning
	}
	t.Running = false
	return nil
}

func (t *Task) Rename(name string) {
	t.Name = name
}

func (t *Task) AddTime(token string) error {
	seconds, err := ParseTimeToken(token)
	if err != nil {
		return err
	}
	if t.TotalSeconds > MaxTotalSeconds || seconds > MaxTotalSeconds-t.TotalSeconds {
		return fmt.Errorf("%w: adding %q", ErrDurationOverflow, token)
	}
	t.TotalSeconds += seconds
	return nil
}

func (t *Task) SubtractTime(token string) error {
	seconds, err := ParseTimeToken(token)
	if err != nil {
		return err
	}
	if seconds > t.TotalSeconds {
		return ErrInsufficientDuration
	}
	t.TotalSeconds -= seconds
	return nil
}

func (t *Task) SetTime(token string) error {
	if t.Running {
		return ErrTaskBusy
	}
	seconds, err := ParseTimeToken(token)
	if err != nil {
		return err
	}
	if seconds > MaxTotalSeconds {
		return fmt.Errorf("%w: %q", ErrDurationOverflow, token)
	}
	t.TotalSeconds = seconds
	return nil
}

// Elapsed returns whole seconds since the last start while running. A clock
// that moved backwards yields zero.
func (t Task) Elapsed(now time.Time) uint64 {
	if !t.Running || t.LastStartedAt == nil {
		return 0
	}
	d := now.Sub(*t.LastStartedAt)
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Second)
}

func (t Task) CurrentDuration(now time.Time) uint64 {
	return AddSeconds(t.TotalSeconds, t.Elapsed(now))
}

// AddSeconds sums two durations, saturating at MaxTotalSeconds.
func AddSeconds(a, b uint64) uint64 {
	if a >= MaxTotalSeconds || b >= MaxTotalSeconds-a {
		return MaxTotalSeconds
	}
	return a + b
}
