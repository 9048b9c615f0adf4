package app

import (
	"strings"

	"todo-screen/model"
)

// ItemOwner receives the events a task card sends upward.
type ItemOwner interface {
	TaskText(id model.TaskID) (string, bool)
	UpdateTaskTextByID(id model.TaskID, text string) bool
	SetImportantByID(id model.TaskID, important bool) bool
	DeleteTaskByID(id model.TaskID) bool
}

// EditPolicy decides the two behaviors the edit flow leaves open.
type EditPolicy struct {
	// CollapseOnCommit closes an expanded card when an edit is committed.
	CollapseOnCommit bool
	// RejectEmptyCommit drops commits whose draft is blank after trim.
	// Off by default: edits are not held to the add-box rule.
	RejectEmptyCommit bool
}

// DefaultEditPolicy collapses on commit and accepts blank commits.
func DefaultEditPolicy() EditPolicy {
	return EditPolicy{CollapseOnCommit: true}
}

// Item is the controller for one task card.
type Item struct {
	id     model.TaskID
	owner  ItemOwner
	policy EditPolicy

	expanded  bool
	important bool
	editing   bool
	draft     string
}

// NewItem creates a collapsed, non-editing card for id.
func NewItem(id model.TaskID, owner ItemOwner, policy EditPolicy) *Item {
	return &Item{id: id, owner: owner, policy: policy}
}

// ID returns the task this card belongs to.
func (it *Item) ID() model.TaskID {
	return it.id
}

// ToggleExpand flips the expanded flag and returns the new value.
func (it *Item) ToggleExpand() bool {
	it.expanded = !it.expanded
	return it.expanded
}

// ToggleImportant flips the important flag and reports it to the owner.
func (it *Item) ToggleImportant() bool {
	next := !it.important
	if it.owner != nil {
		if _, ok := it.owner.TaskText(it.id); !ok {
			return it.important
		}
		it.owner.SetImportantByID(it.id, next)
	}
	it.important = next
	return it.important
}

// BeginEdit enters edit mode with the draft seeded from the task text.
// It does nothing while already editing or once the task is gone.
func (it *Item) BeginEdit() bool {
	if it.editing || it.owner == nil {
		return false
	}
	text, ok := it.owner.TaskText(it.id)
	if !ok {
		return false
	}
	it.editing = true
	it.draft = text
	return true
}

// UpdateDraft replaces the edit draft. Ignored outside edit mode.
func (it *Item) UpdateDraft(text string) {
	if !it.editing {
		return
	}
	it.draft = text
}

// CommitEdit leaves edit mode and sends the draft upward, even when it is
// unchanged or blank. It reports whether an update was sent.
func (it *Item) CommitEdit() bool {
	if !it.editing {
		return false
	}
	it.editing = false
	if it.policy.CollapseOnCommit {
		it.expanded = false
	}
	if it.policy.RejectEmptyCommit && strings.TrimSpace(it.draft) == "" {
		return false
	}
	if it.owner == nil {
		return false
	}
	return it.owner.UpdateTaskTextByID(it.id, it.draft)
}

// RequestDelete asks the owner to remove this task.
func (it *Item) RequestDelete() bool {
	if it.owner == nil {
		return false
	}
	return it.owner.DeleteTaskByID(it.id)
}

// State returns a copy of the card state.
func (it *Item) State() model.ItemState {
	return model.ItemState{
		Expanded:  it.expanded,
		Important: it.important,
		Editing:   it.editing,
		DraftText: it.draft,
	}
}

// Mode returns the card's state machine position.
func (it *Item) Mode() model.ItemMode {
	return it.State().Mode()
}
