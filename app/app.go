package app

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"todo-screen/model"
)

// TaskList owns the active and completed tasks plus the add-box draft.
// Every mutation is total: invalid input degrades to a no-op and the
// returned bool reports whether state changed.
type TaskList struct {
	active    []model.Task
	completed []model.CompletedTask
	draft     string
	nextID    model.TaskID

	now    func() time.Time
	logger *log.Logger
}

// Option configures a TaskList or Screen.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *log.Logger
	policy EditPolicy
	dark   bool
}

// WithClock overrides the clock used for CreatedAt/CompletedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger routes mutation events to logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEditPolicy sets the policy given to every item controller.
func WithEditPolicy(policy EditPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithDarkMode sets the initial theme.
func WithDarkMode(dark bool) Option {
	return func(o *options) {
		o.dark = dark
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:    func() time.Time { return time.Now().UTC() },
		logger: log.New(io.Discard),
		policy: DefaultEditPolicy(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewTaskList creates an empty list.
func NewTaskList(opts ...Option) *TaskList {
	o := buildOptions(opts)
	return &TaskList{
		active:    []model.Task{},
		completed: []model.CompletedTask{},
		nextID:    1,
		now:       o.now,
		logger:    o.logger,
	}
}

// SetDraft replaces the add-box draft without validation.
func (l *TaskList) SetDraft(text string) {
	l.draft = text
}

// Draft returns the add-box draft.
func (l *TaskList) Draft() string {
	return l.draft
}

// AddTask appends the trimmed draft as a new task and clears the draft.
// A blank draft is left untouched and nothing is added.
func (l *TaskList) AddTask() (model.Task, bool) {
	text := strings.TrimSpace(l.draft)
	if text == "" {
		return model.Task{}, false
	}
	task := model.Task{
		ID:        l.nextID,
		Text:      text,
		Important: false,
		CreatedAt: l.now(),
	}
	l.nextID++

	next := make([]model.Task, len(l.active), len(l.active)+1)
	copy(next, l.active)
	l.active = append(next, task)
	l.draft = ""
	l.logger.Debug("task added", "id", task.ID, "count", len(l.active))
	return task, true
}

// DeleteTask removes the task at index; out-of-range indexes are ignored.
func (l *TaskList) DeleteTask(index int) bool {
	if !l.inRange(index) {
		l.logger.Debug("delete ignored", "index", index, "count", len(l.active))
		return false
	}
	id := l.active[index].ID
	l.active = without(l.active, index)
	l.logger.Debug("task deleted", "id", id, "index", index, "count", len(l.active))
	return true
}

// CompleteTask snapshots the task at index into the completed list and
// removes it from the active list.
func (l *TaskList) CompleteTask(index int) bool {
	if !l.inRange(index) {
		l.logger.Debug("complete ignored", "index", index, "count", len(l.active))
		return false
	}
	t := l.active[index]
	done := model.CompletedTask{
		ID:          t.ID,
		Text:        t.Text,
		Important:   t.Important,
		CompletedAt: l.now(),
	}
	completed := make([]model.CompletedTask, len(l.completed), len(l.completed)+1)
	copy(completed, l.completed)
	l.completed = append(completed, done)
	l.active = without(l.active, index)
	l.logger.Debug("task completed", "id", t.ID, "index", index, "completed", len(l.completed))
	return true
}

// UpdateTaskText replaces the text at index verbatim. Blank text is
// accepted here; callers decide whether to allow it.
func (l *TaskList) UpdateTaskText(index int, text string) bool {
	if !l.inRange(index) {
		l.logger.Debug("update ignored", "index", index, "count", len(l.active))
		return false
	}
	next := l.cloneActive()
	next[index].Text = text
	l.active = next
	l.logger.Debug("task updated", "id", next[index].ID, "index", index)
	return true
}

// SetImportant stores the important flag on the task at index.
func (l *TaskList) SetImportant(index int, important bool) bool {
	if !l.inRange(index) {
		return false
	}
	if l.active[index].Important == important {
		return false
	}
	next := l.cloneActive()
	next[index].Important = important
	l.active = next
	l.logger.Debug("task importance changed", "id", next[index].ID, "important", important)
	return true
}

// DeleteTaskByID deletes the task with id, if it is still active.
func (l *TaskList) DeleteTaskByID(id model.TaskID) bool {
	return l.DeleteTask(l.IndexOf(id))
}

// CompleteTaskByID completes the task with id, if it is still active.
func (l *TaskList) CompleteTaskByID(id model.TaskID) bool {
	return l.CompleteTask(l.IndexOf(id))
}

// UpdateTaskTextByID updates the task with id, if it is still active.
func (l *TaskList) UpdateTaskTextByID(id model.TaskID, text string) bool {
	return l.UpdateTaskText(l.IndexOf(id), text)
}

// SetImportantByID flags the task with id, if it is still active.
func (l *TaskList) SetImportantByID(id model.TaskID, important bool) bool {
	return l.SetImportant(l.IndexOf(id), important)
}

// TaskText returns the current text of the task with id.
func (l *TaskList) TaskText(id model.TaskID) (string, bool) {
	idx := l.IndexOf(id)
	if idx < 0 {
		return "", false
	}
	return l.active[idx].Text, true
}

// Tasks returns a copy of the active tasks in display order.
func (l *TaskList) Tasks() []model.Task {
	return l.cloneActive()
}

// Completed returns a copy of the completed snapshots, oldest first.
func (l *TaskList) Completed() []model.CompletedTask {
	out := make([]model.CompletedTask, len(l.completed))
	copy(out, l.completed)
	return out
}

// Len returns the number of active tasks.
func (l *TaskList) Len() int {
	return len(l.active)
}

// Task returns the active task at index.
func (l *TaskList) Task(index int) (model.Task, bool) {
	if !l.inRange(index) {
		return model.Task{}, false
	}
	return l.active[index], true
}

// IndexOf returns the position of id in the active list, or -1.
func (l *TaskList) IndexOf(id model.TaskID) int {
	for i := range l.active {
		if l.active[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *TaskList) inRange(index int) bool {
	return index >= 0 && index < len(l.active)
}

func (l *TaskList) cloneActive() []model.Task {
	out := make([]model.Task, len(l.active))
	copy(out, l.active)
	return out
}

func without(tasks []model.Task, index int) []model.Task {
	out := make([]model.Task, 0, len(tasks)-1)
	out = append(out, tasks[:index]...)
	return append(out, tasks[index+1:]...)
}
