// Package tui implements the interactive chat interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	contextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// answerMsg carries the result of an Ask call back into Update.
type answerMsg struct {
	question string
	answer   *domain.Answer
	err      error
}

// Model is the Bubble Tea model for a chat session.
type Model struct {
	ctx     context.Context
	chat    driving.ChatService
	session *domain.Session

	input    textinput.Model
	viewport viewport.Model

	turns       []domain.Turn
	lastContext []string
	showContext bool
	waiting     bool
	status      string
	ready       bool
}

// New creates a chat model for the session. showContext additionally
// renders the retrieved passages under each answer.
func New(ctx context.Context, chat driving.ChatService, session *domain.Session, showContext bool) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		ctx:         ctx,
		chat:        chat,
		session:     session,
		input:       ti,
		viewport:    viewport.New(0, 0),
		showContext: showContext,
		status:      fmt.Sprintf("Chatting with %s. Ctrl+C to quit.", session.DocumentName),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + ih + 2 // header, spacer, input frame, status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vh
		m.input.Width = msg.Width - 6
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.turns = append(m.turns, domain.Turn{Role: domain.RoleUser, Content: question})
			m.lastContext = nil
			m.waiting = true
			m.status = "Thinking..."
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, m.ask(question)
		case "up":
			m.viewport.ScrollUp(1)
			return m, nil
		case "down":
			m.viewport.ScrollDown(1)
			return m, nil
		}

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = errorStyle.Render("Error: " + msg.err.Error())
			return m, nil
		}
		m.turns = append(m.turns, domain.Turn{Role: domain.RoleAssistant, Content: msg.answer.Text})
		m.lastContext = msg.answer.Contexts
		m.status = fmt.Sprintf("Answered with %d context passages.", len(msg.answer.Contexts))
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs the question against the chat service off the UI loop.
func (m Model) ask(question string) tea.Cmd {
	ctx, chat, session := m.ctx, m.chat, m.session
	return func() tea.Msg {
		answer, err := chat.Ask(ctx, session, question)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Render("docchat: " + m.session.DocumentName)
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)

	return header + "\n" + m.viewport.View() + "\n" + input + "\n" + status
}

// renderTranscript renders all turns, newest last.
func (m Model) renderTranscript() string {
	if len(m.turns) == 0 {
		return "Ask anything about the document."
	}

	var b strings.Builder
	for i, turn := range m.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString(userStyle.Render("You: "))
		case domain.RoleAssistant:
			b.WriteString(assistantStyle.Render("Assistant: "))
		}
		b.WriteString(turn.Content)
	}

	if m.showContext && len(m.lastContext) > 0 {
		b.WriteString("\n\n")
		b.WriteString(contextStyle.Render(renderContexts(m.lastContext)))
	}

	return b.String()
}

// renderContexts formats the retrieved passages, most similar first.
func renderContexts(contexts []string) string {
	var b strings.Builder
	b.WriteString("Retrieved context:")
	for i, ctx := range contexts {
		fmt.Fprintf(&b, "\n  [%d] %s", i+1, ctx)
	}
	return b.String()
}
