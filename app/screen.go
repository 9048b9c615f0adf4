package app

import (
	"github.com/charmbracelet/log"

	"todo-screen/model"
)

// Theme is the screen-wide dark/light flag. It is created by the Screen and
// handed to whoever renders it; there is no package-level theme.
type Theme struct {
	dark bool
}

// Dark reports whether dark mode is on.
func (t *Theme) Dark() bool {
	return t != nil && t.dark
}

// Toggle flips the theme and returns the new value.
func (t *Theme) Toggle() bool {
	t.dark = !t.dark
	return t.dark
}

// Screen wires the task list to the per-task card controllers.
type Screen struct {
	list   *TaskList
	items  map[model.TaskID]*Item
	theme  *Theme
	policy EditPolicy
	logger *log.Logger
}

var _ ItemOwner = (*Screen)(nil)

// NewScreen creates an empty screen.
func NewScreen(opts ...Option) *Screen {
	o := buildOptions(opts)
	return &Screen{
		list:   NewTaskList(opts...),
		items:  make(map[model.TaskID]*Item),
		theme:  &Theme{dark: o.dark},
		policy: o.policy,
		logger: o.logger,
	}
}

// List returns the underlying task list controller.
func (s *Screen) List() *TaskList {
	return s.list
}

// Theme returns the shared theme value.
func (s *Screen) Theme() *Theme {
	return s.theme
}

// ToggleTheme flips dark mode.
func (s *Screen) ToggleTheme() bool {
	dark := s.theme.Toggle()
	s.logger.Debug("theme toggled", "dark", dark)
	return dark
}

// Policy returns the edit policy handed to new cards.
func (s *Screen) Policy() EditPolicy {
	return s.policy
}

// Item returns the card controller for id, creating it on first use.
// It returns nil for ids that are not active.
func (s *Screen) Item(id model.TaskID) *Item {
	if it, ok := s.items[id]; ok {
		return it
	}
	t, ok := s.list.Task(s.list.IndexOf(id))
	if !ok {
		return nil
	}
	it := NewItem(id, s, s.policy)
	it.important = t.Important
	s.items[id] = it
	return it
}

// ItemAt returns the card controller for the task at index.
func (s *Screen) ItemAt(index int) *Item {
	t, ok := s.list.Task(index)
	if !ok {
		return nil
	}
	return s.Item(t.ID)
}

// ItemState returns the card state for id without creating a controller.
func (s *Screen) ItemState(id model.TaskID) model.ItemState {
	if it, ok := s.items[id]; ok {
		return it.State()
	}
	return model.ItemState{}
}

// AddTask adds the current draft as a task.
func (s *Screen) AddTask() (model.Task, bool) {
	return s.list.AddTask()
}

// DeleteTask deletes the task at index and drops its card state.
func (s *Screen) DeleteTask(index int) bool {
	t, ok := s.list.Task(index)
	if !ok {
		return false
	}
	if !s.list.DeleteTask(index) {
		return false
	}
	delete(s.items, t.ID)
	return true
}

// CompleteTask moves the task at index to the completed list and drops its
// card state.
func (s *Screen) CompleteTask(index int) bool {
	t, ok := s.list.Task(index)
	if !ok {
		return false
	}
	if !s.list.CompleteTask(index) {
		return false
	}
	delete(s.items, t.ID)
	return true
}

// TaskText returns the text of the active task with id.
func (s *Screen) TaskText(id model.TaskID) (string, bool) {
	return s.list.TaskText(id)
}

// UpdateTaskTextByID replaces the text of the task with id.
func (s *Screen) UpdateTaskTextByID(id model.TaskID, text string) bool {
	return s.list.UpdateTaskTextByID(id, text)
}

// SetImportantByID sets the important flag of the task with id.
func (s *Screen) SetImportantByID(id model.TaskID, important bool) bool {
	return s.list.SetImportantByID(id, important)
}

// DeleteTaskByID deletes the task with id and drops its card state.
func (s *Screen) DeleteTaskByID(id model.TaskID) bool {
	return s.DeleteTask(s.list.IndexOf(id))
}

// CompleteTaskByID completes the task with id, if it is still active.
func (s *Screen) CompleteTaskByID(id model.TaskID) bool {
	return s.CompleteTask(s.list.IndexOf(id))
}

// Snapshot returns the render state.
func (s *Screen) Snapshot() model.Snapshot {
	return model.Snapshot{
		Active:    s.list.Tasks(),
		Completed: s.list.Completed(),
		Draft:     s.list.Draft(),
		DarkMode:  s.theme.Dark(),
	}
}
