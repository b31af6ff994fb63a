// Package store owns the in-memory task list and everything derived from it.
//
// A TaskStore is not safe for concurrent use. Callers serialise access the
// way the UI event loop does: one operation runs to completion before the
// next starts.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tgienger/taskhub/internal/models"
)

// TaskStore holds the ordered task list
type TaskStore struct {
	tasks  []models.Task
	now    func() time.Time
	lastID int64
	logger *log.Logger
}

// Option configures a TaskStore
type Option func(*TaskStore) error

// WithClock sets the time source used for ids and overdue checks
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) error {
		s.now = now
		return nil
	}
}

// WithTasks sets the initial list, in order. Ids must be unique.
func WithTasks(tasks []models.Task) Option {
	return func(s *TaskStore) error {
		seen := make(map[int64]bool, len(tasks))
		for _, t := range tasks {
			if seen[t.ID] {
				return fmt.Errorf("%w: %d", ErrDuplicateID, t.ID)
			}
			seen[t.ID] = true
			if t.ID > s.lastID {
				s.lastID = t.ID
			}
		}
		s.tasks = append([]models.Task(nil), tasks...)
		return nil
	}
}

// WithLogger sets the logger for mutation events
func WithLogger(logger *log.Logger) Option {
	return func(s *TaskStore) error {
		s.logger = logger
		return nil
	}
}

// New creates a store
func New(opts ...Option) (*TaskStore, error) {
	s := &TaskStore{
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add validates the draft and prepends a new incomplete task
func (s *TaskStore) Add(draft models.Draft) (models.Task, error) {
	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return models.Task{}, &ValidationError{Field: "text", Reason: "task description cannot be empty"}
	}
	priority := draft.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return models.Task{}, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", priority)}
	}

	task := models.Task{
		ID:       s.nextID(),
		Text:     text,
		Priority: priority,
		Subject:  strings.TrimSpace(draft.Subject),
		DueDate:  draft.DueDate,
	}
	s.tasks = append([]models.Task{task}, s.tasks...)
	s.logger.Debug("task added", "id", task.ID, "priority", task.Priority)
	return task, nil
}

// nextID derives an id from the clock, bumping past any id already issued
func (s *TaskStore) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// ToggleComplete flips the completed flag of the task with the given id.
// It reports whether the task went from incomplete to complete.
func (s *TaskStore) ToggleComplete(id int64) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Debug("task toggled", "id", id, "completed", s.tasks[i].Completed)
	return s.tasks[i].Completed
}

// Delete removes the task with the given id, if present
func (s *TaskStore) Delete(id int64) {
	i := s.IndexOf(id)
	if i < 0 {
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.logger.Debug("task deleted", "id", id)
}

// ClearCompleted removes every completed task and returns how many went
func (s *TaskStore) ClearCompleted() int {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	if removed > 0 {
		s.logger.Debug("completed tasks cleared", "count", removed)
	}
	return removed
}

// EditText replaces the task's text. Empty text deletes the task.
func (s *TaskStore) EditText(id int64, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.Delete(id)
		return
	}
	i := s.IndexOf(id)
	if i < 0 {
		return
	}
	s.tasks[i].Text = text
	s.logger.Debug("task edited", "id", id)
}

// Reorder moves the task at from so that it ends up at index to.
// to is a position in the list after the task has been taken out.
func (s *TaskStore) Reorder(from, to int) error {
	n := len(s.tasks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return &IndexError{From: from, To: to, Len: n}
	}
	if from == to {
		return nil
	}
	moved := s.tasks[from]
	s.tasks = append(s.tasks[:from], s.tasks[from+1:]...)
	s.tasks = append(s.tasks[:to], append([]models.Task{moved}, s.tasks[to:]...)...)
	s.logger.Debug("task moved", "id", moved.ID, "from", from, "to", to)
	return nil
}

// Tasks returns a copy of the list in display order
func (s *TaskStore) Tasks() []models.Task {
	return append([]models.Task(nil), s.tasks...)
}

// Len returns the number of tasks
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// IndexOf returns the position of the task with the given id, or -1
func (s *TaskStore) IndexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with the given id
func (s *TaskStore) Get(id int64) (models.Task, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

// Filter returns the tasks that belong in the view
func (s *TaskStore) Filter(view models.View) []models.Task {
	var out []models.Task
	for _, t := range s.tasks {
		if view.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Search keeps the tasks whose text or subject contains term, ignoring case.
// An empty term keeps everything.
func Search(tasks []models.Task, term string) []models.Task {
	if term == "" {
		return tasks
	}
	needle := strings.ToLower(term)
	var out []models.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Text), needle) ||
			strings.Contains(strings.ToLower(t.Subject), needle) {
			out = append(out, t)
		}
	}
	return out
}

// Visible returns the displayed list: the view filter, then the search term
func (s *TaskStore) Visible(view models.View, term string) []models.Task {
	return Search(s.Filter(view), term)
}

// Stats aggregates the whole list regardless of filter or search
func (s *TaskStore) Stats() models.Stats {
	today := models.DateOf(s.now())
	var st models.Stats
	st.Total = len(s.tasks)
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
		if t.IsOverdue(today) {
			st.Overdue++
		}
	}
	st.Active = st.Total - st.Completed
	if st.Total > 0 {
		st.Progress = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// Today returns the store's current calendar day
func (s *TaskStore) Today() models.Date {
	return models.DateOf(s.now())
}

// Export serialises the full list as an indented JSON array
func (s *TaskStore) Export() ([]byte, error) {
	tasks := s.tasks
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return data, nil
}
