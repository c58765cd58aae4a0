package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/sandeepkv93/tasktimer/internal/commands"
	"github.com/sandeepkv93/tasktimer/internal/model"
	"github.com/sandeepkv93/tasktimer/internal/storage"
	"github.com/sandeepkv93/tasktimer/internal/store"
	"github.com/sandeepkv93/tasktimer/internal/views"
)

// Dispatcher runs one command per call: load the category, apply the
// command, save the category back. Business failures become error results;
// only storage failures are returned as errors.
type Dispatcher struct {
	Repo      storage.Repository
	Confirmer store.Confirmer
	Styles    views.Styles
	Location  *time.Location
	Now       func() time.Time
	Logger    *slog.Logger
}

func NewDispatcher(repo storage.Repository, confirmer store.Confirmer) *Dispatcher {
	return &Dispatcher{
		Repo:      repo,
		Confirmer: confirmer,
		Styles:    views.NewStyles(nil),
		Location:  time.Local,
		Now:       time.Now,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// session holds the stores touched by a single command.
type session struct {
	ctx     context.Context
	d       *Dispatcher
	current *store.Store
	archive *store.Store
}

func (d *Dispatcher) Run(ctx context.Context, category store.Category, cmd commands.Command) (commands.Result, error) {
	if !category.IsValid() {
		return commands.Result{}, fmt.Errorf("%w: unknown task type %q", model.ErrInvalidFormat, category)
	}
	s, err := d.load(ctx, category)
	if err != nil {
		return commands.Result{}, err
	}
	sess := &session{ctx: ctx, d: d, current: s}

	res, err := commands.Execute(cmd, sess.handlers())
	if err != nil {
		return commands.Result{}, err
	}

	if sess.archive != nil {
		if err := d.save(ctx, sess.archive); err != nil {
			return res, err
		}
	}
	if err := d.save(ctx, s); err != nil {
		return res, err
	}
	return res, nil
}

// Snapshot loads a category and lists it without saving.
func (d *Dispatcher) Snapshot(ctx context.Context, category store.Category, opts store.ListOptions) (store.Listing, error) {
	s, err := d.load(ctx, category)
	if err != nil {
		return store.Listing{}, err
	}
	return s.List(opts), nil
}

func (d *Dispatcher) load(ctx context.Context, category store.Category) (*store.Store, error) {
	tasks, err := d.Repo.Load(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("load %s tasks: %w", category, err)
	}
	d.logger().Debug("loaded tasks", "category", category, "count", len(tasks))
	return store.NewWithClock(category, tasks, d.Now), nil
}

func (d *Dispatcher) save(ctx context.Context, s *store.Store) error {
	if err := d.Repo.Save(ctx, s.Category(), s.Tasks()); err != nil {
		return fmt.Errorf("save %s tasks: %w", s.Category(), err)
	}
	d.logger().Debug("saved tasks", "category", s.Category(), "count", s.Len())
	return nil
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}

func (s *session) handlers() commands.Handlers {
	return commands.Handlers{
		List:       s.list,
		Create:     s.create,
		Delete:     s.delete,
		DeleteName: s.deleteName,
		Start:      s.start,
		Stop:       s.stop,
		Cancel:     s.cancel,
		Rename:     s.rename,
		Add:        s.add,
		Sub:        s.sub,
		Set:        s.set,
		Archive:    s.archiveTask,
		Clear:      s.clear,
	}
}

func ok(format string, args ...any) (commands.Result, error) {
	return commands.Result{Message: fmt.Sprintf(format, args...)}, nil
}

func fail(format string, args ...any) (commands.Result, error) {
	return commands.Result{Message: fmt.Sprintf(format, args...), IsError: true}, nil
}

// failure turns a business error on task id into the user-facing message.
func failure(err error, id uint32, token string) (commands.Result, error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail("Task with id %d does not exist", id)
	case errors.Is(err, model.ErrAlreadyRunning):
		return fail("Task %d is already running", id)
	case errors.Is(err, model.ErrNotRunning):
		return fail("Task %d is not currently running", id)
	case errors.Is(err, model.ErrInvalidFormat):
		return fail("Invalid time %q, expected XXhYYm format. Example: 1h30m", token)
	case errors.Is(err, model.ErrDurationOverflow):
		return fail("Time %s would push task %d past the maximum of %s", token, id, model.FormatDuration(model.MaxTotalSeconds))
	case errors.Is(err, store.ErrIDsExhausted):
		return fail("No task id is left above %d, delete or archive that task first", uint32(math.MaxUint32))
	default:
		return commands.Result{}, err
	}
}

func (s *session) list(a commands.ListArgs) (commands.Result, error) {
	listing := s.current.List(store.ListOptions{All: a.All, Timestamp: a.Timestamp, Base: a.Base})
	return commands.Result{Message: views.RenderListing(s.d.Styles, listing, s.d.Location)}, nil
}

func (s *session) create(a commands.CreateArgs) (commands.Result, error) {
	task, err := s.current.Create(a.Name, a.Start)
	if err != nil {
		return failure(err, 0, "")
	}
	return ok("Task %s created with id %d", task.Name, task.ID)
}

func (s *session) delete(a commands.TaskArgs) (commands.Result, error) {
	if err := s.current.RemoveByID(a.ID); err != nil {
		return failure(err, a.ID, "")
	}
	return ok("Task %d deleted", a.ID)
}

func (s *session) deleteName(a commands.DeleteNameArgs) (commands.Result, error) {
	id, err := s.current.RemoveByName(a.Name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail("Task with name '%s' does not exist", a.Name)
	case errors.Is(err, store.ErrAmbiguous):
		return fail("More than one task is named '%s', delete it by id instead", a.Name)
	case err != nil:
		return commands.Result{}, err
	}
	return ok("Task %d '%s' deleted", id, a.Name)
}

func (s *session) start(a commands.TaskArgs) (commands.Result, error) {
	task, err := s.current.Get(a.ID)
	if err == nil {
		err = task.Start(s.current.Now())
	}
	if err != nil {
		return failure(err, a.ID, "")
	}
	return ok("Task %d started", a.ID)
}

func (s *session) stop(a commands.TaskArgs) (commands.Result, error) {
	task, err := s.current.Get(a.ID)
	if err == nil {
		err = task.Stop(s.current.Now())
	}
	if err != nil {
		return failure(err, a.ID, "")
	}
	return ok("Task %d stopped, timer: %s", a.ID, model.FormatDuration(task.TotalSeconds))
}

func (s *session) cancel(a commands.TaskArgs) (commands.Result, error) {
	task, err := s.current.Get(a.ID)
	if err == nil {
		err = task.Cancel()
	}
	if err != nil {
		return failure(err, a.ID, "")
	}
	return ok("Task %d canceled, timer: %s", a.ID, model.FormatDuration(task.TotalSeconds))
}

func (s *session) rename(a commands.RenameArgs) (commands.Result, error) {
	task, err := s.current.Get(a.ID)
	if err != nil {
		return failure(err, a.ID, "")
	}
	task.Rename(a.Name)
	return ok("Task %d renamed to %s", a.ID, a.Name)
}

func (s *session) add(a commands.TimeArgs) (commands.Result, error) {
	task, err := s.current.Get(a.ID)
	if err == nil {
		err = task.AddTime(a.Time)
	}
	if err != nil {
		return failure(err, a.ID, a.Time)
	}
	return ok("Added %s to task with id %d, new timer: %s", a.Time, a.ID, model.FormatDuration(task.TotalSeconds))
}

func (s *session) sub(a commands.TimeArgs) (commands.Result, error) {
	task, err := s.current.Get(a.ID)
	if err == nil {
		err = task.SubtractTime(a.Time)
	}
	if errors.Is(err, model.ErrInsufficientDuration) {
		return fail("Task %d does not have enough time to subtract, it has %s", a.ID, model.FormatTimeToken(task.TotalSeconds))
	}
	if err != nil {
		return failure(err, a.ID, a.Time)
	}
	return ok("Subtracted %s from task %d, new timer: %s", a.Time, a.ID, model.FormatDuration(task.TotalSeconds))
}

func (s *session) set(a commands.TimeArgs) (commands.Result, error) {
	task, err := s.current.Get(a.ID)
	if err == nil {
		err = task.SetTime(a.Time)
	}
	if errors.Is(err, model.ErrTaskBusy) {
		return fail("Task %d is currently running, stop it before setting a new time.", a.ID)
	}
	if err != nil {
		return failure(err, a.ID, a.Time)
	}
	return ok("New time %s set for task %d", a.Time, a.ID)
}

func (s *session) archiveTask(a commands.TaskArgs) (commands.Result, error) {
	if s.current.Category() == store.CategoryArchive {
		return fail("Cannot archive archived tasks")
	}
	if s.archive == nil {
		target, err := s.d.load(s.ctx, store.CategoryArchive)
		if err != nil {
			return commands.Result{}, err
		}
		s.archive = target
	}
	archiveID, err := s.current.Archive(a.ID, s.archive)
	if errors.Is(err, model.ErrTaskBusy) {
		return fail("Task %d is currently running, stop it before archiving.", a.ID)
	}
	if err != nil {
		return failure(err, a.ID, "")
	}
	return ok("Task %d archived with archive id %d", a.ID, archiveID)
}

func (s *session) clear() (commands.Result, error) {
	if s.d.Confirmer == nil {
		return fail("Clearing %s tasks needs an interactive confirmation", s.current.Category())
	}
	cleared, err := s.current.Clear(s.d.Confirmer)
	if err != nil {
		return fail("Could not read confirmation: %v", err)
	}
	if !cleared {
		return ok("Clearing canceled.")
	}
	return ok("Tasks cleared.")
}
