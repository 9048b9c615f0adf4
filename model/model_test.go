package model

import "testing"

func TestItemStateMode(t *testing.T) {
	cases := []struct {
		name  string
		state ItemState
		want  ItemMode
	}{
		{name: "default", state: ItemState{}, want: ItemViewing},
		{name: "expanded", state: ItemState{Expanded: true}, want: ItemViewingExpanded},
		{name: "editing wins", state: ItemState{Expanded: true, Editing: true}, want: ItemEditing},
		{name: "important does not change mode", state: ItemState{Important: true}, want: ItemViewing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.state.Mode(); got != tc.want {
				t.Fatalf("expected mode %s, got %s", tc.want, got)
			}
		})
	}
}

func TestItemModeString(t *testing.T) {
	if ItemEditing.String() != "editing" || ItemViewingExpanded.String() != "expanded" || ItemViewing.String() != "viewing" {
		t.Fatalf("unexpected mode labels")
	}
}
