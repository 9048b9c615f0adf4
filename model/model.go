package model

import "time"

// TaskID identifies an active task. IDs come from a per-screen counter and
// are never reused, so item state keyed by them survives deletes.
type TaskID int64

// Task is an individual todo item.
type Task struct {
	ID        TaskID
	Text      string
	Important bool
	CreatedAt time.Time
}

// CompletedTask keeps a historic record of a task at the moment it was completed.
type CompletedTask struct {
	ID          TaskID
	Text        string
	Important   bool
	CompletedAt time.Time
}

// ItemMode is the state of a single task card.
type ItemMode int

const (
	ItemViewing ItemMode = iota
	ItemViewingExpanded
	ItemEditing
)

func (m ItemMode) String() string {
	switch m {
	case ItemViewingExpanded:
		return "expanded"
	case ItemEditing:
		return "editing"
	default:
		return "viewing"
	}
}

// ItemState is the ephemeral per-card UI state.
type ItemState struct {
	Expanded  bool
	Important bool
	Editing   bool
	DraftText string
}

// Mode derives the card mode from the flags.
func (s ItemState) Mode() ItemMode {
	switch {
	case s.Editing:
		return ItemEditing
	case s.Expanded:
		return ItemViewingExpanded
	default:
		return ItemViewing
	}
}

// Snapshot is everything the presentation layer needs to draw one frame.
type Snapshot struct {
	Active    []Task
	Completed []CompletedTask
	Draft     string
	DarkMode  bool
}
