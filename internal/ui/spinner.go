package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
)

// statusText updates the text shown next to the spinner glyph.
type statusText string

// Spinner wraps a Bubbletea spinner for simple non-interactive use
// during repository scans. Messages can change while it runs, e.g.
// from "discovering repositories..." to "checking 12 repositories".
type Spinner struct {
	program   *tea.Program
	updates   chan string
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
	lastMsg   string
}

// spinnerModel is the internal Bubbletea model
type spinnerModel struct {
	spinner spinner.Model
	text    string
	updates chan string
}

func newSpinnerModel(text string, updates chan string) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = AccentStyle
	return spinnerModel{spinner: sp, text: text, updates: updates}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.nextUpdate())
}

func (m spinnerModel) nextUpdate() tea.Cmd {
	return func() tea.Msg {
		text, ok := <-m.updates
		if !ok {
			return tea.Quit()
		}
		return statusText(text)
	}
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusText:
		m.text = string(msg)
		return m, m.nextUpdate()
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() tea.View {
	if m.text == "" {
		return tea.NewView("")
	}
	return tea.NewView(m.spinner.View() + " " + m.text)
}

// NewSpinner creates a spinner with an initial message. The spinner
// does not render until Start is called.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		updates: make(chan string, 10),
		done:    make(chan struct{}),
		lastMsg: message,
	}
}

// Start begins the spinner animation on stderr.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}

	model := newSpinnerModel(s.lastMsg, s.updates)

	// Render to stderr so stdout stays safe to pipe
	s.program = tea.NewProgram(model, tea.WithoutSignalHandler(), tea.WithOutput(os.Stderr))
	s.isRunning = true

	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
}

// UpdateMessage changes the spinner message. Before Start it replaces
// the initial message instead.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		s.lastMsg = message
		return
	}

	// Non-blocking send. Dropping an update is acceptable for UI;
	// blocking the scan is not. Channel close happens under the same
	// mutex, so this cannot send on a closed channel.
	select {
	case s.updates <- message:
	default:
	}
}

// Stop halts the spinner and clears its line. Safe to call before
// Start and safe to call twice.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	close(s.updates)
	s.mu.Unlock()

	if s.program != nil {
		s.program.Quit()
	}

	// Bounded wait so a stuck terminal cannot hang the command
	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(os.Stderr, "\r\033[K")
}
