package store

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sandeepkv93/tasktimer/internal/model"
)

var (
	ErrNotFound           = errors.New("store: task not found")
	ErrAmbiguous          = errors.New("store: task name matches more than one task")
	ErrArchiveFromArchive = errors.New("store: archived tasks cannot be archived")
	ErrIDsExhausted       = errors.New("store: no task id left above the highest id")
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Store is the in-memory task map of one category for one invocation.
type Store struct {
	category Category
	tasks    map[uint32]*model.Task
	now      func() time.Time
}

func New(category Category, tasks map[uint32]model.Task) *Store {
	return NewWithClock(category, tasks, time.Now)
}

func NewWithClock(category Category, tasks map[uint32]model.Task, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		category: category,
		tasks:    make(map[uint32]*model.Task, len(tasks)),
		now:      now,
	}
	for id, task := range tasks {
		t := task
		t.ID = id
		s.tasks[id] = &t
	}
	return s
}

func (s *Store) Category() Category { return s.category }

func (s *Store) Now() time.Time { return s.now() }

func (s *Store) Len() int { return len(s.tasks) }

// AllocateID returns one past the highest id in the store, or 1 when empty.
// It fails once the highest id is the largest representable one.
func (s *Store) AllocateID() (uint32, error) {
	var maxID uint32
	for id := range s.tasks {
		if id > maxID {
			maxID = id
		}
	}
	if maxID == math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s store holds id %d", ErrIDsExhausted, s.category, maxID)
	}
	return maxID + 1, nil
}

func (s *Store) Create(name string, start bool) (model.Task, error) {
	id, err := s.AllocateID()
	if err != nil {
		return model.Task{}, err
	}
	task := model.NewTask(id, name, start, s.now())
	s.tasks[id] = &task
	return task, nil
}

// Get returns the stored task for in-place mutation.
func (s *Store) Get(id uint32) (*model.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return task, nil
}

func (s *Store) RemoveByID(id uint32) error {
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	delete(s.tasks, id)
	return nil
}

// RemoveByName deletes the only task with the given name and returns its id.
func (s *Store) RemoveByName(name string) (uint32, error) {
	var matches []uint32
	for id, task := range s.tasks {
		if task.Name == name {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("%w: name %q", ErrNotFound, name)
	case 1:
		delete(s.tasks, matches[0])
		return matches[0], nil
	default:
		return 0, fmt.Errorf("%w: %q (%d tasks)", ErrAmbiguous, name, len(matches))
	}
}

// Archive moves a stopped task into target under a fresh target id.
func (s *Store) Archive(id uint32, target *Store) (uint32, error) {
	if s.category == CategoryArchive {
		return 0, ErrArchiveFromArchive
	}
	task, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	if task.Running {
		return 0, model.ErrTaskBusy
	}
	targetID, err := target.AllocateID()
	if err != nil {
		return 0, err
	}
	moved := *task
	moved.ID = targetID
	if task.LastStartedAt != nil {
		started := *task.LastStartedAt
		moved.LastStartedAt = &started
	}
	target.tasks[moved.ID] = &moved
	delete(s.tasks, id)
	return moved.ID, nil
}

// Clear wipes the store once the confirmer agrees.
func (s *Store) Clear(c Confirmer) (bool, error) {
	ok, err := c.Confirm(fmt.Sprintf("Do you want to proceed clearing all %s tasks? (Y/N)", s.category))
	if err != nil || !ok {
		return false, err
	}
	s.tasks = make(map[uint32]*model.Task)
	return true, nil
}

// Tasks returns a copy of the store contents keyed by id.
func (s *Store) Tasks() map[uint32]model.Task {
	out := make(map[uint32]model.Task, len(s.tasks))
	for id, task := range s.tasks {
		out[id] = *task
	}
	return out
}

// Sorted returns the tasks in ascending id order.
func (s *Store) Sorted() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, *task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
