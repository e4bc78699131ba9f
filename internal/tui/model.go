// Package tui is the interactive chat surface: a scrolling transcript, an
// input line, and a spinner while the model thinks. One TUI run owns one
// conversation session.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/campuskit/advisor/internal/rag"
)

// Advisor is the TUI-facing subset of the pipeline.
type Advisor interface {
	Answer(ctx context.Context, session *rag.Session, query string) string
}

// answerMsg delivers a finished answer back into the event loop.
type answerMsg struct {
	question string
	answer   string
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	advisor Advisor
	session *rag.Session

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	transcript []string
	waiting    bool
	ready      bool
	status     string
}

// New creates the chat model over an existing session.
func New(advisor Advisor, session *rag.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about courses, prerequisites, policies..."
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		advisor:  advisor,
		session:  session,
		input:    ti,
		viewport: viewport.New(0, 0),
		spin:     sp,
		status:   "Ready. Type a question and press Enter; Esc quits.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frameH := transcriptStyle.GetFrameSize()
		reserved := frameH + 4 // title, input, status, spacer
		h := msg.Height - reserved
		if h < 3 {
			h = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-2)
		m.viewport.Height = h
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter && !m.waiting {
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			if isExitWord(q) {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.waiting = true
			m.status = "Thinking..."
			m.transcript = append(m.transcript, userStyle.Render("You: ")+q)
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.spin.Tick, m.ask(q))
		}

	case answerMsg:
		m.waiting = false
		m.status = "Ready."
		m.transcript = append(m.transcript, advisorStyle.Render("Advisor: ")+msg.answer, "")
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := titleStyle.Render("Campus Advisor")
	status := m.status
	if m.waiting {
		status = m.spin.View() + " " + status
	}
	return title + "\n" +
		transcriptStyle.Render(m.viewport.View()) + "\n" +
		inputStyle.Render(m.input.View()) + "\n" +
		statusStyle.Render(status)
}

// ask runs the pipeline off the event loop and reports back as a message.
func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer := m.advisor.Answer(context.Background(), m.session, question)
		return answerMsg{question: question, answer: answer}
	}
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	return strings.Join(m.transcript, "\n")
}

func isExitWord(q string) bool {
	switch strings.ToLower(q) {
	case "exit", "quit":
		return true
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the interactive chat and blocks until the user quits.
func Run(advisor Advisor, session *rag.Session) error {
	if _, err := tea.NewProgram(New(advisor, session), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running chat interface: %w", err)
	}
	return nil
}
