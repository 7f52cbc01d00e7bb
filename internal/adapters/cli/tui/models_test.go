package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/ports"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

func TestMenuModel_Select(t *testing.T) {
	options := []MenuOption{
		{Label: "Enter URL/Username", Value: "extract"},
		{Label: "Download from list", Value: "download"},
		{Label: "Quit", Value: "quit"},
	}

	m := press(NewMenuModel("What next?", options), "down", "down", "down", "up", "enter")
	if got := m.(MenuModel).Selected(); got != "download" {
		t.Errorf("Selected() = %q, want download", got)
	}

	cancelled := press(NewMenuModel("What next?", options), "q")
	if got := cancelled.(MenuModel).Selected(); got != "" {
		t.Errorf("Selected() after quit = %q, want empty", got)
	}
}

func TestCheckboxModel_Toggle(t *testing.T) {
	options := []CheckboxOption{
		{Label: "YouTube", Value: "YouTube", Checked: true},
		{Label: "TikTok", Value: "TikTok"},
	}

	m := press(NewCheckboxModel("Platforms", options), "down", "x", "enter")
	cb := m.(CheckboxModel)
	if cb.Cancelled() {
		t.Fatal("expected confirmed selection")
	}
	got := cb.Selected()
	if len(got) != 2 || got[0] != "YouTube" || got[1] != "TikTok" {
		t.Errorf("Selected() = %v", got)
	}
}

func TestCheckboxModel_RequiresOneSelection(t *testing.T) {
	options := []CheckboxOption{{Label: "YouTube", Value: "YouTube", Checked: true}}

	m := press(NewCheckboxModel("Platforms", options), "x", "enter")
	if !m.(CheckboxModel).Cancelled() {
		t.Error("enter with nothing checked should not confirm")
	}

	m = press(m, "esc")
	cb := m.(CheckboxModel)
	if !cb.Cancelled() || len(cb.Selected()) != 0 {
		t.Errorf("quit should cancel and clear, got %v", cb.Selected())
	}
}

func TestPlatformOptions(t *testing.T) {
	options := PlatformOptions(domain.NewSettings(domain.PlatformVimeo))
	if len(options) != len(domain.KnownPlatforms()) {
		t.Fatalf("got %d options, want one per platform", len(options))
	}
	for _, opt := range options {
		want := opt.Value == string(domain.PlatformVimeo)
		if opt.Checked != want {
			t.Errorf("%s checked = %v, want %v", opt.Value, opt.Checked, want)
		}
	}
}

func TestListPickerModel_Scrolls(t *testing.T) {
	lists := make([]ports.ListInfo, 20)
	for i := range lists {
		lists[i] = ports.ListInfo{Name: string(rune('a'+i)) + ".txt", Lines: i, ModTime: time.Now()}
	}

	var m tea.Model = NewListPickerModel(lists)
	for i := 0; i < 15; i++ {
		m = press(m, "down")
	}
	picker := m.(ListPickerModel)
	if picker.offset != 15-maxVisible+1 {
		t.Errorf("offset = %d, want %d", picker.offset, 15-maxVisible+1)
	}

	m = press(m, "enter")
	if got := m.(ListPickerModel).Selected(); got != "p.txt" {
		t.Errorf("Selected() = %q, want p.txt", got)
	}
}

func TestListPickerModel_Cancel(t *testing.T) {
	m := press(NewListPickerModel([]ports.ListInfo{{Name: "a.txt"}}), "q")
	if got := m.(ListPickerModel).Selected(); got != "" {
		t.Errorf("Selected() = %q, want empty", got)
	}
}

func TestListPickerModel_WithCursorOn(t *testing.T) {
	lists := make([]ports.ListInfo, 20)
	for i := range lists {
		lists[i] = ports.ListInfo{Name: string(rune('a'+i)) + ".txt"}
	}

	m := NewListPickerModel(lists).WithCursorOn("t.txt")
	if m.cursor != 19 || m.offset != 19-maxVisible+1 {
		t.Errorf("cursor=%d offset=%d", m.cursor, m.offset)
	}

	m = press(m, "enter").(ListPickerModel)
	if m.Selected() != "t.txt" {
		t.Errorf("Selected() = %q", m.Selected())
	}

	unknown := NewListPickerModel(lists).WithCursorOn("missing.txt")
	if unknown.cursor != 0 {
		t.Errorf("unknown name moved cursor to %d", unknown.cursor)
	}
}
