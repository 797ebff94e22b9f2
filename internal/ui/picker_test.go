package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(key string) tea.KeyPressMsg {
	if len(key) == 1 {
		return tea.KeyPressMsg{Code: rune(key[0])}
	}
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		return tea.KeyPressMsg{Code: rune(key[0])}
	}
}

func pickerItems() []PickItem {
	return []PickItem{
		{Label: "alpha.qmd"},
		{Label: "beta.qmd", Note: "eval disabled"},
		{Label: "notes.txt"},
	}
}

func TestPickerModel_InitialFilter(t *testing.T) {
	t.Parallel()

	m := newPickerModel("Select a document", pickerItems())

	if len(m.filtered) != 3 {
		t.Fatalf("expected all 3 items without a filter, got %d", len(m.filtered))
	}
	// Original order is preserved when no filter is set
	for i, match := range m.filtered {
		if match.Index != i {
			t.Errorf("filtered[%d].Index = %d, want %d", i, match.Index, i)
		}
	}
	if m.choice != -1 {
		t.Errorf("choice = %d, want -1 before selection", m.choice)
	}
}

func TestPickerModel_ApplyFilter(t *testing.T) {
	t.Parallel()

	m := newPickerModel("Select a document", pickerItems())
	m.input.SetValue("no")
	m.applyFilter()

	if len(m.filtered) != 1 {
		t.Fatalf("expected 1 match for %q, got %d", "no", len(m.filtered))
	}
	if m.filtered[0].Index != 2 {
		t.Errorf("match Index = %d, want 2 (notes.txt)", m.filtered[0].Index)
	}
}

func TestPickerModel_FilterClampsCursor(t *testing.T) {
	t.Parallel()

	m := newPickerModel("Select a document", pickerItems())
	m.cursor = 2
	m.input.SetValue("no")
	m.applyFilter()

	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after filter shrank the list", m.cursor)
	}
}

func TestPickerModel_Navigation(t *testing.T) {
	t.Parallel()

	m := newPickerModel("Select a document", pickerItems())

	updated, _ := m.Update(keyPress("down"))
	um := updated.(pickerModel)
	if um.cursor != 1 {
		t.Fatalf("cursor = %d after down, want 1", um.cursor)
	}

	updated, _ = um.Update(keyPress("down"))
	um = updated.(pickerModel)
	updated, _ = um.Update(keyPress("down"))
	um = updated.(pickerModel)
	if um.cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped at last item)", um.cursor)
	}

	updated, _ = um.Update(keyPress("up"))
	um = updated.(pickerModel)
	if um.cursor != 1 {
		t.Errorf("cursor = %d after up, want 1", um.cursor)
	}
}

func TestPickerModel_Enter(t *testing.T) {
	t.Parallel()

	m := newPickerModel("Select a document", pickerItems())
	m.cursor = 1

	updated, cmd := m.Update(keyPress("enter"))
	um := updated.(pickerModel)

	if um.choice != 1 {
		t.Errorf("choice = %d, want 1", um.choice)
	}
	if um.cancelled {
		t.Error("enter should not cancel")
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestPickerModel_EnterNoMatches(t *testing.T) {
	t.Parallel()

	m := newPickerModel("Select a document", pickerItems())
	m.input.SetValue("zzz")
	m.applyFilter()

	if len(m.filtered) != 0 {
		t.Fatalf("expected no matches for %q, got %d", "zzz", len(m.filtered))
	}

	updated, cmd := m.Update(keyPress("enter"))
	um := updated.(pickerModel)

	if um.choice != -1 {
		t.Errorf("choice = %d, want -1 with nothing to select", um.choice)
	}
	if cmd == nil {
		t.Error("enter should still quit with nothing selected")
	}
}

func TestPickerModel_Cancel(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"esc", "ctrl+c"} {
		m := newPickerModel("Select a document", pickerItems())
		updated, cmd := m.Update(keyPress(key))
		um := updated.(pickerModel)

		if !um.cancelled {
			t.Errorf("%s: cancelled = false, want true", key)
		}
		if cmd == nil {
			t.Errorf("%s: should quit the program", key)
		}
	}
}

func TestPickerModel_View(t *testing.T) {
	t.Parallel()

	m := newPickerModel("Select a document", pickerItems())
	content := fmt.Sprint(m.View().Content)

	for _, want := range []string{"Select a document", "alpha.qmd", "beta.qmd", "eval disabled", "enter confirm"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q:\n%s", want, content)
		}
	}
}

func TestPickerModel_ViewWindow(t *testing.T) {
	t.Parallel()

	items := make([]PickItem, 15)
	for i := range items {
		items[i] = PickItem{Label: strings.Repeat("x", i+1) + ".qmd"}
	}

	m := newPickerModel("Select a document", items)
	content := fmt.Sprint(m.View().Content)

	if !strings.Contains(content, "more below") {
		t.Errorf("view of 15 items should indicate overflow:\n%s", content)
	}

	m.cursor = 14
	content = fmt.Sprint(m.View().Content)
	if !strings.Contains(content, "more above") {
		t.Errorf("view at last item should indicate items above:\n%s", content)
	}
}

func TestPickerModel_ViewNoMatches(t *testing.T) {
	t.Parallel()

	m := newPickerModel("Select a document", pickerItems())
	m.input.SetValue("zzz")
	m.applyFilter()

	if !strings.Contains(fmt.Sprint(m.View().Content), "No matching documents") {
		t.Error("view should say there are no matching documents")
	}
}

func TestPickerModel_Init(t *testing.T) {
	t.Parallel()

	m := newPickerModel("Select a document", pickerItems())
	if m.Init() == nil {
		t.Error("Init() should return the blink cmd")
	}
}

func TestPick_NoItems(t *testing.T) {
	t.Parallel()

	idx, err := Pick("Select a document", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != -1 {
		t.Errorf("idx = %d, want -1 for empty items", idx)
	}
}
