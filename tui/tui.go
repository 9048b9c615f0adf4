package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo-screen/app"
	"todo-screen/gesture"
	"todo-screen/model"
	"todo-screen/theme"
)

const frameInterval = time.Second / 60

type focusArea int

const (
	focusInput focusArea = iota
	focusTasks
)

func (f focusArea) String() string {
	if f == focusTasks {
		return "tasks"
	}
	return "input"
}

// Options tunes the presentation layer.
type Options struct {
	Now    func() time.Time
	Logger *log.Logger

	ThemeTransition time.Duration
	CardTransition  time.Duration
	HoldThreshold   time.Duration
	CollapsedHeight float64
	ExpandedHeight  float64

	// Clipboard receives the text copied with 'y'.
	Clipboard func(string) error
}

// DefaultOptions mirrors the stock animation timings.
func DefaultOptions() Options {
	return Options{
		Now:             time.Now,
		ThemeTransition: theme.ThemeTransition,
		CardTransition:  theme.CardTransition,
		HoldThreshold:   gesture.DefaultThreshold,
		CollapsedHeight: theme.CollapsedHeight,
		ExpandedHeight:  theme.ExpandedHeight,
		Clipboard:       clipboard.WriteAll,
	}
}

type frameMsg time.Time

type holdMsg struct {
	target string
	id     model.TaskID
	seq    int
}

// Model renders one to-do screen and forwards user intents to it.
type Model struct {
	screen *app.Screen
	opts   Options
	logger *log.Logger
	keys   keyMap
	help   help.Model

	focus   focusArea
	cursor  int
	input   textinput.Model
	edit    textinput.Model
	editing bool
	editID  model.TaskID

	showHistory bool

	status    string
	statusErr bool

	width  int
	height int
	vp     viewport.Model

	themeTween theme.Tween
	heights    map[model.TaskID]theme.Tween
	animating  bool
	hold       *gesture.Hold
}

// NewModel builds the screen model. Zero option fields take their defaults.
func NewModel(screen *app.Screen, opts Options) *Model {
	defaults := DefaultOptions()
	if opts.Now == nil {
		opts.Now = defaults.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.HoldThreshold <= 0 {
		opts.HoldThreshold = defaults.HoldThreshold
	}
	if opts.CollapsedHeight <= 0 {
		opts.CollapsedHeight = defaults.CollapsedHeight
	}
	if opts.ExpandedHeight < opts.CollapsedHeight {
		opts.ExpandedHeight = opts.CollapsedHeight
	}
	if opts.Clipboard == nil {
		opts.Clipboard = defaults.Clipboard
	}

	input := textinput.New()
	input.Placeholder = "Write Something..."
	input.Prompt = ""
	input.CharLimit = 280
	input.SetValue(screen.List().Draft())
	input.Focus()

	edit := textinput.New()
	edit.Prompt = ""
	edit.CharLimit = 280

	start := 0.0
	if screen.Theme().Dark() {
		start = 1
	}

	return &Model{
		screen:     screen,
		opts:       opts,
		logger:     opts.Logger,
		keys:       defaultKeyMap(),
		help:       help.New(),
		focus:      focusInput,
		input:      input,
		edit:       edit,
		status:     "Ready",
		vp:         viewport.New(0, 0),
		themeTween: theme.Settled(start),
		heights:    make(map[model.TaskID]theme.Tween),
		hold:       gesture.NewHold(opts.HoldThreshold),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case frameMsg:
		cmds = append(cmds, m.stepAnimation())
	case holdMsg:
		if m.hold.Check(msg.target, msg.seq, m.opts.Now()) {
			cmds = append(cmds, m.beginEdit(msg.id))
		}
	case tea.MouseMsg:
		cmds = append(cmds, m.updateMouse(msg))
	case tea.KeyMsg:
		if m.editing {
			cmds = append(cmds, m.updateEditMode(msg))
			break
		}
		if m.focus == focusInput {
			cmd, quit := m.updateInputMode(msg)
			if quit {
				return m, tea.Quit
			}
			cmds = append(cmds, cmd)
			break
		}
		cmd, quit := m.updateTasksMode(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	default:
		if m.editing {
			var cmd tea.Cmd
			m.edit, cmd = m.edit.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if len(m.heights) > 0 {
		cmds = append(cmds, m.startAnimation())
	}
	m.ensureSelection()
	m.syncViewport()
	return m, tea.Batch(cmds...)
}

func (m *Model) updateInputMode(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case msg.String() == "ctrl+c":
		return nil, true
	case msg.String() == "enter":
		m.addTask()
		return nil, false
	case msg.String() == "esc", key.Matches(msg, m.keys.Focus):
		m.setFocus(focusTasks)
		return nil, false
	case msg.String() == "ctrl+t":
		return m.toggleTheme(), false
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.screen.List().SetDraft(m.input.Value())
	return cmd, false
}

func (m *Model) updateTasksMode(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !key.Matches(msg, m.keys.Edit) && m.hold.Active() {
		m.hold.Release()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Add):
		return m.setFocus(focusInput), false
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme(), false
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.History):
		m.toggleHistory()
	case key.Matches(msg, m.keys.Copy):
		m.copyActiveTasks()
	case m.showHistory:
		m.setStatus("Completed tasks are read-only. Press 'h' to go back.", false)
	case key.Matches(msg, m.keys.Expand):
		return m.toggleExpand(), false
	case key.Matches(msg, m.keys.Important):
		m.toggleImportant()
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Complete):
		m.completeSelected()
	case key.Matches(msg, m.keys.Edit):
		return m.pressEditKey(), false
	}
	return nil, false
}

// updateEditMode feeds keys to the edit field. Any key that moves focus
// away from the field commits the edit.
func (m *Model) updateEditMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		m.commitEdit()
		return tea.Quit
	case "enter", "esc", "up", "down":
		m.commitEdit()
		return nil
	case "tab":
		m.commitEdit()
		return m.setFocus(focusInput)
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	if it := m.screen.Item(m.editID); it != nil {
		it.UpdateDraft(m.edit.Value())
	}
	return cmd
}

func (m *Model) updateMouse(msg tea.MouseMsg) tea.Cmd {
	now := m.opts.Now()
	switch msg.Action {
	case tea.MouseActionRelease:
		m.hold.Release()
		return nil
	case tea.MouseActionPress:
	default:
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	if msg.Y >= m.inputTop() && msg.Y < m.inputTop()+inputRows {
		var cmds []tea.Cmd
		if m.editing {
			m.commitEdit()
		}
		cmds = append(cmds, m.setFocus(focusInput))
		if msg.X >= m.viewWidth()-addButtonWidth {
			m.addTask()
		}
		return tea.Batch(cmds...)
	}
	if msg.Y == 0 && msg.X >= m.viewWidth()-themeToggleWidth {
		if m.editing {
			m.commitEdit()
		}
		return m.toggleTheme()
	}

	id, ok := m.cardAt(msg.Y)
	if m.editing && (!ok || id != m.editID) {
		m.commitEdit()
	}
	if !ok || m.showHistory {
		return nil
	}
	if m.editing {
		return nil
	}

	m.cursor = m.screen.List().IndexOf(id)
	m.setFocus(focusTasks)
	target := fmt.Sprintf("card:%d", id)
	seq := m.hold.Press(target, now)
	return tea.Tick(m.opts.HoldThreshold, func(time.Time) tea.Msg {
		return holdMsg{target: target, id: id, seq: seq}
	})
}

func (m *Model) addTask() {
	m.screen.List().SetDraft(m.input.Value())
	task, ok := m.screen.AddTask()
	if !ok {
		m.setStatus("Nothing to add: write something first", false)
		return
	}
	m.input.SetValue("")
	m.cursor = m.screen.List().Len() - 1
	m.logger.Debug("add intent", "id", task.ID)
	m.setStatus(fmt.Sprintf("Added %q", task.Text), false)
}

func (m *Model) pressEditKey() tea.Cmd {
	t, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected", true)
		return nil
	}
	if !m.hold.Repeat(fmt.Sprintf("key:%d", t.ID), m.opts.Now()) {
		m.setStatus("Keep holding 'e' to edit", false)
		return nil
	}
	return m.beginEdit(t.ID)
}

func (m *Model) beginEdit(id model.TaskID) tea.Cmd {
	m.hold.Release()
	if m.editing {
		return nil
	}
	it := m.screen.Item(id)
	if it == nil || !it.BeginEdit() {
		return nil
	}
	m.editing = true
	m.editID = id
	m.focus = focusTasks
	m.input.Blur()
	m.edit.SetValue(it.State().DraftText)
	m.edit.CursorEnd()
	m.logger.Debug("edit started", "id", id)
	m.setStatus("Editing: enter or esc to save", false)
	return m.edit.Focus()
}

func (m *Model) commitEdit() {
	if !m.editing {
		return
	}
	id := m.editID
	m.editing = false
	m.edit.Blur()

	it := m.screen.Item(id)
	if it == nil {
		return
	}
	now := m.opts.Now()
	from := m.cardUnits(id, now)
	wasExpanded := it.State().Expanded
	sent := it.CommitEdit()
	if wasExpanded && !it.State().Expanded {
		m.animateCard(id, from, m.opts.CollapsedHeight, now)
	}
	m.logger.Debug("edit committed", "id", id, "sent", sent)
	if sent {
		m.setStatus("Task updated", false)
	} else {
		m.setStatus("Edit discarded", false)
	}
}

func (m *Model) toggleExpand() tea.Cmd {
	it := m.selectedItem()
	if it == nil {
		m.setStatus("No task selected", true)
		return nil
	}
	now := m.opts.Now()
	from := m.cardUnits(it.ID(), now)
	to := m.opts.CollapsedHeight
	if it.ToggleExpand() {
		to = m.opts.ExpandedHeight
	}
	m.animateCard(it.ID(), from, to, now)
	return m.startAnimation()
}

func (m *Model) toggleImportant() {
	it := m.selectedItem()
	if it == nil {
		m.setStatus("No task selected", true)
		return
	}
	if !it.State().Expanded {
		m.setStatus("Open the task with '.' to mark it important", false)
		return
	}
	if it.ToggleImportant() {
		m.setStatus("Marked important", false)
	} else {
		m.setStatus("No longer important", false)
	}
}

func (m *Model) deleteSelected() {
	t, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected", true)
		return
	}
	if m.screen.Item(t.ID).RequestDelete() {
		delete(m.heights, t.ID)
		m.setStatus("Task deleted", false)
	}
}

func (m *Model) completeSelected() {
	t, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected", true)
		return
	}
	if m.screen.CompleteTask(m.cursor) {
		delete(m.heights, t.ID)
		m.setStatus(fmt.Sprintf("Completed %q", t.Text), false)
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	dark := m.screen.ToggleTheme()
	target := 0.0
	if dark {
		target = 1
	}
	m.themeTween = m.themeTween.Retarget(target, m.opts.ThemeTransition, m.opts.Now())
	if dark {
		m.setStatus("Dark mode", false)
	} else {
		m.setStatus("Light mode", false)
	}
	return m.startAnimation()
}

func (m *Model) toggleHistory() {
	if !m.showHistory && len(m.screen.List().Completed()) == 0 {
		m.setStatus("No completed tasks yet. Press 'x' on a task to complete it.", false)
		return
	}
	m.showHistory = !m.showHistory
	if m.showHistory {
		m.setStatus("Showing completed tasks", false)
	} else {
		m.setStatus("Back to active tasks", false)
	}
}

func (m *Model) copyActiveTasks() {
	tasks := m.screen.List().Tasks()
	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		text := strings.TrimSpace(strings.ReplaceAll(t.Text, "\n", " "))
		if text == "" {
			continue
		}
		if t.Important {
			text = "⭐ " + text
		}
		parts = append(parts, "- "+text)
	}
	if len(parts) == 0 {
		m.setStatus("No tasks to copy", false)
		return
	}
	if err := m.opts.Clipboard(strings.Join(parts, "\n")); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		m.setStatus("Copy failed: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("%d tasks copied to the clipboard", len(parts)), false)
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	if f == focusInput {
		m.showHistory = false
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) moveCursor(delta int) {
	if m.editing {
		m.commitEdit()
	}
	n := m.screen.List().Len()
	if m.showHistory {
		n = len(m.screen.List().Completed())
	}
	if n == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, n-1)
}

func (m *Model) ensureSelection() {
	n := m.screen.List().Len()
	if m.showHistory {
		n = len(m.screen.List().Completed())
	}
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, n-1)
}

func (m *Model) selectedTask() (model.Task, bool) {
	if m.showHistory {
		return model.Task{}, false
	}
	return m.screen.List().Task(m.cursor)
}

func (m *Model) selectedItem() *app.Item {
	if m.showHistory {
		return nil
	}
	return m.screen.ItemAt(m.cursor)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// animateCard starts a height tween for id.
func (m *Model) animateCard(id model.TaskID, from, to float64, now time.Time) {
	m.heights[id] = theme.NewTween(from, to, m.opts.CardTransition, now)
}

// cardUnits is the current card height in layout units.
func (m *Model) cardUnits(id model.TaskID, now time.Time) float64 {
	if tw, ok := m.heights[id]; ok {
		return tw.Value(now)
	}
	if m.screen.ItemState(id).Expanded {
		return m.opts.ExpandedHeight
	}
	return m.opts.CollapsedHeight
}

func (m *Model) startAnimation() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return frameTick()
}

func (m *Model) stepAnimation() tea.Cmd {
	now := m.opts.Now()
	busy := !m.themeTween.Done(now)
	for id, tw := range m.heights {
		if tw.Done(now) {
			delete(m.heights, id)
			continue
		}
		busy = true
	}
	if !busy {
		m.animating = false
		return nil
	}
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
