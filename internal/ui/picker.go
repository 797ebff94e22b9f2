package ui

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"
)

// PickItem is one selectable entry in the picker. The note, if any, is
// rendered dimmed after the label.
type PickItem struct {
	Label string
	Note  string
}

// itemSource implements fuzzy.Source over pick items.
type itemSource []PickItem

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

type pickerModel struct {
	prompt    string
	items     []PickItem
	input     textinput.Model
	filtered  []fuzzy.Match // matches with scores and indices
	cursor    int           // position in filtered list
	choice    int           // index into items, -1 until chosen
	cancelled bool
}

func newPickerModel(prompt string, items []PickItem) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Focus()
	ti.CharLimit = 156
	ti.SetWidth(50)

	m := pickerModel{
		prompt: prompt,
		items:  items,
		input:  ti,
		choice: -1,
	}
	m.applyFilter()
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				m.choice = m.filtered[m.cursor].Index
			}
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *pickerModel) applyFilter() {
	query := m.input.Value()
	if query == "" {
		// No filter, show everything in original order
		m.filtered = make([]fuzzy.Match, len(m.items))
		for i := range m.items {
			m.filtered[i] = fuzzy.Match{Str: m.items[i].Label, Index: i}
		}
	} else {
		// Results are sorted by score, best first
		m.filtered = fuzzy.FindFrom(query, itemSource(m.items))
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func (m pickerModel) View() tea.View {
	var b strings.Builder
	b.WriteString(Bold.Render(m.prompt) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	const maxVisible = 10
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(MutedStyle.Render("  ↑ more above") + "\n")
	}

	query := m.input.Value()
	for i := start; i < end; i++ {
		match := m.filtered[i]
		item := m.items[match.Index]

		cursor := "  "
		style := NormalStyle
		if i == m.cursor {
			cursor = AccentStyle.Render("> ")
			style = AccentStyle
		}

		label := style.Render(item.Label)
		if query != "" && len(match.MatchedIndexes) > 0 {
			label = highlightMatches(item.Label, match.MatchedIndexes, style)
		}

		b.WriteString(cursor + label)
		if item.Note != "" {
			b.WriteString("  " + MutedStyle.Render("("+item.Note+")"))
		}
		b.WriteString("\n")
	}

	if end < len(m.filtered) {
		b.WriteString(MutedStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(MutedStyle.Render("  No matching documents") + "\n")
	}

	b.WriteString("\n" + MutedStyle.Render("↑/↓ select • type to filter • enter confirm • esc cancel"))
	return tea.NewView(b.String())
}

// highlightMatches renders label with the matched characters highlighted
// and everything else in the base style.
func highlightMatches(label string, matchedIndexes []int, base lipgloss.Style) string {
	matchSet := make(map[int]bool)
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	var result strings.Builder
	for i, r := range []rune(label) {
		if matchSet[i] {
			result.WriteString(HighlightStyle.Render(string(r)))
		} else {
			result.WriteString(base.Render(string(r)))
		}
	}
	return result.String()
}

// Pick runs an interactive fuzzy picker on stderr and returns the index
// of the chosen item, or -1 when the user cancels or items is empty.
// Callers should gate on IsTerminal first.
func Pick(prompt string, items []PickItem) (int, error) {
	if len(items) == 0 {
		return -1, nil
	}

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(newPickerModel(prompt, items),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)

	final, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("failed to run picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok || m.cancelled {
		return -1, nil
	}
	return m.choice, nil
}
