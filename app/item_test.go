package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-screen/model"
)

func newScreenWith(t *testing.T, opts []Option, texts ...string) *Screen {
	t.Helper()
	s := NewScreen(opts...)
	for _, text := range texts {
		s.List().SetDraft(text)
		_, ok := s.AddTask()
		require.True(t, ok, "add %q", text)
	}
	return s
}

func TestToggleExpandTwiceRestores(t *testing.T) {
	s := newScreenWith(t, nil, "A")
	it := s.ItemAt(0)
	require.NotNil(t, it)

	assert.True(t, it.ToggleExpand())
	assert.Equal(t, model.ItemViewingExpanded, it.Mode())
	assert.False(t, it.ToggleExpand())
	assert.Equal(t, model.ItemViewing, it.Mode())
}

func TestEditScenarioUpdatesTask(t *testing.T) {
	s := newScreenWith(t, nil, "A")
	it := s.ItemAt(0)

	require.True(t, it.BeginEdit())
	assert.Equal(t, model.ItemEditing, it.Mode())
	assert.Equal(t, "A", it.State().DraftText)

	it.UpdateDraft("A2")
	require.True(t, it.CommitEdit())

	assert.Equal(t, model.ItemViewing, it.Mode())
	got, _ := s.List().Task(0)
	assert.Equal(t, "A2", got.Text)
}

func TestCommitSendsUnchangedAndBlankDrafts(t *testing.T) {
	s := newScreenWith(t, nil, "A")
	it := s.ItemAt(0)

	require.True(t, it.BeginEdit())
	assert.True(t, it.CommitEdit(), "unchanged draft is still sent")

	require.True(t, it.BeginEdit())
	it.UpdateDraft("")
	assert.True(t, it.CommitEdit())
	got, _ := s.List().Task(0)
	assert.Equal(t, "", got.Text)
}

func TestRejectEmptyCommitPolicy(t *testing.T) {
	policy := EditPolicy{RejectEmptyCommit: true}
	s := newScreenWith(t, []Option{WithEditPolicy(policy)}, "A")
	it := s.ItemAt(0)

	require.True(t, it.BeginEdit())
	it.UpdateDraft("   ")
	assert.False(t, it.CommitEdit())
	assert.Equal(t, model.ItemViewing, it.Mode())
	got, _ := s.List().Task(0)
	assert.Equal(t, "A", got.Text)
}

func TestCommitCollapsePolicy(t *testing.T) {
	s := newScreenWith(t, nil, "A")
	it := s.ItemAt(0)
	it.ToggleExpand()
	it.BeginEdit()
	it.CommitEdit()
	assert.False(t, it.State().Expanded, "default policy collapses on commit")

	keep := newScreenWith(t, []Option{WithEditPolicy(EditPolicy{CollapseOnCommit: false})}, "A")
	it = keep.ItemAt(0)
	it.ToggleExpand()
	it.BeginEdit()
	it.CommitEdit()
	assert.True(t, it.State().Expanded)
	assert.Equal(t, model.ItemViewingExpanded, it.Mode())
}

func TestDraftIgnoredOutsideEditing(t *testing.T) {
	s := newScreenWith(t, nil, "A")
	it := s.ItemAt(0)

	it.UpdateDraft("nope")
	assert.Equal(t, "", it.State().DraftText)
	assert.False(t, it.CommitEdit())

	require.True(t, it.BeginEdit())
	assert.False(t, it.BeginEdit(), "begin while editing is ignored")
}

func TestToggleImportantWritesThrough(t *testing.T) {
	s := newScreenWith(t, nil, "A")
	it := s.ItemAt(0)
	it.ToggleExpand()

	assert.True(t, it.ToggleImportant())
	got, _ := s.List().Task(0)
	assert.True(t, got.Important)

	require.True(t, s.CompleteTask(0))
	completed := s.List().Completed()
	require.Len(t, completed, 1)
	assert.True(t, completed[0].Important)
}

func TestToggleImportantIgnoredOnceTaskIsGone(t *testing.T) {
	s := newScreenWith(t, nil, "A")
	it := s.ItemAt(0)
	require.True(t, s.DeleteTask(0))

	assert.False(t, it.ToggleImportant())
	assert.False(t, it.State().Important)

	detached := NewItem(7, nil, DefaultEditPolicy())
	assert.True(t, detached.ToggleImportant(), "a card without owner keeps its own flag")
}

func TestRequestDeleteDropsCardState(t *testing.T) {
	s := newScreenWith(t, nil, "A", "B", "C")
	first := s.ItemAt(0)
	first.ToggleExpand()
	first.BeginEdit()
	second := s.ItemAt(1)

	require.True(t, first.RequestDelete())
	assert.Equal(t, []string{"B", "C"}, texts(s.List().Tasks()))

	// The card now at index 0 is B's, with none of A's state attached.
	now := s.ItemAt(0)
	assert.Same(t, second, now)
	assert.Equal(t, model.ItemState{}, now.State())
	assert.False(t, first.RequestDelete(), "second delete of the same card is ignored")
}

func TestItemForUnknownID(t *testing.T) {
	s := newScreenWith(t, nil, "A")
	assert.Nil(t, s.Item(model.TaskID(42)))
	assert.Nil(t, s.ItemAt(5))
	assert.Equal(t, model.ItemState{}, s.ItemState(model.TaskID(42)))
}

func TestEditOfDeletedTaskIsDropped(t *testing.T) {
	s := newScreenWith(t, nil, "A", "B")
	it := s.ItemAt(0)
	require.True(t, it.BeginEdit())
	it.UpdateDraft("late")

	require.True(t, s.DeleteTask(0))
	assert.False(t, it.CommitEdit())
	assert.Equal(t, []string{"B"}, texts(s.List().Tasks()))
}

func TestThemeToggleAndSnapshot(t *testing.T) {
	s := newScreenWith(t, []Option{WithDarkMode(true)}, "A")
	assert.True(t, s.Theme().Dark())
	assert.False(t, s.ToggleTheme())

	s.List().SetDraft("draft")
	snap := s.Snapshot()
	assert.False(t, snap.DarkMode)
	assert.Equal(t, "draft", snap.Draft)
	assert.Equal(t, []string{"A"}, texts(snap.Active))
	assert.Empty(t, snap.Completed)
}
