// Package tui renders the templechat conversation as a terminal UI. The
// flow is three screens: nickname entry, the chat itself, and an ending
// screen shown when the turn budget runs out or the user leaves.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"templechat/internal/limiter"
	"templechat/internal/persona"
	"templechat/internal/session"
	"templechat/pkg/chattypes"
)

type screen int

const (
	screenNickname screen = iota
	screenChat
	screenEnd
)

// endOptionCount covers "talk more" and "delete records".
const endOptionCount = 2

// Config carries everything the TUI needs to run one conversation.
type Config struct {
	Persona persona.Persona
	Limiter *limiter.Limiter
	Client  chattypes.CompletionClient
}

// turnDoneMsg delivers the orchestrator's result back into the update loop.
type turnDoneMsg struct {
	result chattypes.TurnResult
}

// Model is the bubbletea model for the whole conversation flow.
type Model struct {
	cfg     Config
	session *session.Session
	screen  screen

	nameInput  textinput.Model
	chatInput  textinput.Model
	transcript viewport.Model
	spinner    spinner.Model

	inFlight   bool
	cancelTurn context.CancelFunc
	statusLine string
	endChoice  int

	width  int
	height int

	styles styles
}

// NewModel builds the initial model at the nickname screen.
func NewModel(cfg Config) Model {
	nameInput := textinput.New()
	nameInput.Prompt = "❯ "
	nameInput.Placeholder = "별명을 입력해 주세요"
	nameInput.CharLimit = 0 // rune length is validated on submit
	nameInput.Focus()

	chatInput := textinput.New()
	chatInput.Prompt = "❯ "
	chatInput.Placeholder = "고민을 이야기해 보세요"
	chatInput.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#b8863b"))

	transcript := viewport.New(0, 0)
	transcript.MouseWheelEnabled = true

	return Model{
		cfg:        cfg,
		screen:     screenNickname,
		nameInput:  nameInput,
		chatInput:  chatInput,
		transcript: transcript,
		spinner:    sp,
		styles:     newStyles(),
	}
}

// Run starts the TUI program and blocks until it exits.
func Run(cfg Config) error {
	program := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.transcript.Width = msg.Width
		m.transcript.Height = maxInt(msg.Height-6, 3)
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelInFlight()
			return m, tea.Quit
		}
		switch m.screen {
		case screenNickname:
			return m.updateNickname(msg)
		case screenChat:
			return m.updateChat(msg)
		case screenEnd:
			return m.updateEnd(msg)
		}

	case turnDoneMsg:
		return m.handleTurnDone(msg)

	case spinner.TickMsg:
		if m.inFlight {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateNickname(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		name, err := persona.ValidateDisplayName(m.nameInput.Value())
		if err != nil {
			m.statusLine = err.Error()
			return m, nil
		}
		m.session = session.New(m.cfg.Persona, name, m.cfg.Limiter, m.cfg.Client)
		m.statusLine = ""
		if m.session.LimitReached() {
			m.screen = screenEnd
			return m, nil
		}
		m.screen = screenChat
		m.nameInput.Blur()
		m.chatInput.Focus()
		m.refreshTranscript()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.cancelInFlight()
		m.screen = screenEnd
		m.endChoice = 0
		return m, nil
	case tea.KeyEnter:
		if m.inFlight {
			return m, nil
		}
		text := m.chatInput.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.chatInput.Reset()
		return m.submitTurn(text)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	cmds = append(cmds, cmd)
	m.transcript, cmd = m.transcript.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateEnd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "left", "h":
		m.endChoice = (m.endChoice + endOptionCount - 1) % endOptionCount
	case "down", "j", "right", "l", "tab":
		m.endChoice = (m.endChoice + 1) % endOptionCount
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		if m.endChoice == 0 {
			// Talk more: only possible while turns remain.
			if m.session != nil && !m.session.LimitReached() {
				m.screen = screenChat
				m.chatInput.Focus()
				m.refreshTranscript()
				return m, textinput.Blink
			}
			m.statusLine = m.cfg.Persona.LimitMessage
			return m, nil
		}
		// Delete records: reset the counter and the transcript.
		if m.session != nil {
			if err := m.session.Reset(); err != nil {
				m.statusLine = err.Error()
				return m, nil
			}
		}
		m.statusLine = ""
		m.screen = screenChat
		m.chatInput.Focus()
		m.refreshTranscript()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) submitTurn(text string) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelTurn = cancel
	m.inFlight = true
	sess := m.session

	turnCmd := func() tea.Msg {
		return turnDoneMsg{result: sess.SubmitTurn(ctx, text)}
	}
	return m, tea.Batch(m.spinner.Tick, turnCmd)
}

func (m Model) handleTurnDone(msg turnDoneMsg) (tea.Model, tea.Cmd) {
	m.inFlight = false
	m.cancelTurn = nil
	m.refreshTranscript()

	switch msg.result.Kind {
	case chattypes.TurnLimitReached:
		m.screen = screenEnd
		m.endChoice = 0
	case chattypes.TurnReply, chattypes.TurnError:
		if m.session.LimitReached() {
			// The last turn was just spent; show the ending after the reply.
			m.screen = screenEnd
			m.endChoice = 0
		}
	}
	return m, nil
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenNickname:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case screenChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) cancelInFlight() {
	if m.cancelTurn != nil {
		m.cancelTurn()
		m.cancelTurn = nil
	}
}

func (m *Model) refreshTranscript() {
	if m.session == nil {
		return
	}
	m.transcript.SetContent(m.renderTranscript())
	m.transcript.GotoBottom()
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for _, msg := range m.session.Messages() {
		switch msg.Role {
		case chattypes.RoleUser:
			b.WriteString(m.styles.user.Render("나"))
			b.WriteString("  ")
			b.WriteString(m.styles.userText.Render(msg.Content))
		default:
			b.WriteString(m.styles.persona.Render(m.cfg.Persona.DisplayName))
			b.WriteString("  ")
			b.WriteString(m.styles.personaText.Render(msg.Content))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) View() string {
	switch m.screen {
	case screenNickname:
		return m.viewNickname()
	case screenEnd:
		return m.viewEnd()
	default:
		return m.viewChat()
	}
}

func (m Model) viewNickname() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render(m.cfg.Persona.DisplayName + "과의 대화"))
	b.WriteString("\n\n")
	b.WriteString("어떻게 불러드릴까요? (최대 " + fmt.Sprint(persona.MaxDisplayNameLength) + "자)\n\n")
	b.WriteString(m.styles.inputPanel.Render(m.nameInput.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.counter.Render(fmt.Sprintf("%d/%d", runeLen(m.nameInput.Value()), persona.MaxDisplayNameLength)))
	if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.errorText.Render(m.statusLine))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.help.Render("enter 시작 · ctrl+c 종료"))
	return b.String()
}

func (m Model) viewChat() string {
	var b strings.Builder
	remaining := m.cfg.Limiter.Remaining()
	b.WriteString(m.styles.header.Render(m.cfg.Persona.DisplayName))
	b.WriteString("  ")
	b.WriteString(m.styles.headerMuted.Render(fmt.Sprintf("남은 대화 %d회", remaining)))
	b.WriteString("\n")
	b.WriteString(m.transcript.View())
	b.WriteString("\n")
	if m.inFlight {
		b.WriteString(m.spinner.View() + " " + m.styles.headerMuted.Render("답변을 기다리는 중..."))
	} else {
		b.WriteString(m.styles.inputPanel.Render(m.chatInput.View()))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("enter 보내기 · esc 마치기 · ctrl+c 종료"))
	return b.String()
}

func (m Model) viewEnd() string {
	var b strings.Builder
	b.WriteString(m.styles.endTitle.Render(m.cfg.Persona.EndTitle))
	b.WriteString("\n\n")

	options := []string{"다시 이야기하기", "대화 기록 삭제하기"}
	for i, opt := range options {
		if i == m.endChoice {
			b.WriteString(m.styles.endSelected.Render(opt))
		} else {
			b.WriteString(m.styles.endOption.Render(opt))
		}
		b.WriteString("\n")
	}

	if m.session != nil && m.session.LimitReached() {
		b.WriteString("\n")
		b.WriteString(m.styles.headerMuted.Render(m.cfg.Persona.LimitMessage))
	}
	if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.errorText.Render(m.statusLine))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("↑/↓ 선택 · enter 확인 · q 종료"))
	return b.String()
}

func runeLen(s string) int {
	return len([]rune(s))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
