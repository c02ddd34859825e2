package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templechat/internal/limiter"
	"templechat/internal/llm"
	"templechat/internal/persona"
	"templechat/pkg/chattypes"
)

func testConfig() Config {
	return Config{
		Persona: persona.Persona{
			ID:           "nun",
			DisplayName:  "수녀님",
			Greeting:     "환영합니다. 고민을 이야기해 보세요.",
			EndTitle:     "오늘도 수고했어요\n당신 최고야",
			LimitMessage: "준비된 대화를 모두 마쳤어요.",
			ErrorPrefix:  "수녀님과의 대화에 문제가 생겼어요.",
		},
		Limiter: limiter.New(limiter.NewMemoryCounterStore()),
		Client:  llm.NewMockClient(),
	}
}

func pressEnter(m tea.Model) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next
	}
	return m
}

func TestNicknameScreenRejectsInvalidName(t *testing.T) {
	m := tea.Model(NewModel(testConfig()))

	// Empty name stays on the nickname screen with an error.
	next, _ := pressEnter(m)
	model := next.(Model)
	assert.Equal(t, screenNickname, model.screen)
	assert.NotEmpty(t, model.statusLine)

	// A name over the rune limit is rejected too.
	next = typeText(t, next, "열글자가넘는아주긴별명")
	next, _ = pressEnter(next)
	model = next.(Model)
	assert.Equal(t, screenNickname, model.screen)
	assert.Contains(t, model.statusLine, "too long")
}

func TestNicknameScreenStartsChat(t *testing.T) {
	m := tea.Model(NewModel(testConfig()))
	m = typeText(t, m, "나그네")
	next, _ := pressEnter(m)
	model := next.(Model)

	assert.Equal(t, screenChat, model.screen)
	require.NotNil(t, model.session)
	messages := model.session.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "환영합니다. 고민을 이야기해 보세요.", messages[0].Content)
}

func TestTurnDoneAdvancesToEndAtLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Limiter = limiter.NewWithMax(limiter.NewMemoryCounterStore(), 1)

	m := tea.Model(NewModel(cfg))
	m = typeText(t, m, "나그네")
	m, _ = pressEnter(m)
	model := m.(Model)
	require.Equal(t, screenChat, model.screen)

	// Simulate the single allowed turn completing.
	require.NoError(t, cfg.Limiter.RecordTurn())
	next, _ := model.Update(turnDoneMsg{result: chattypes.ReplyResult("괜찮아요.")})
	model = next.(Model)

	assert.Equal(t, screenEnd, model.screen)
	assert.False(t, model.inFlight)
}

func TestEndScreenResetReturnsToChat(t *testing.T) {
	cfg := testConfig()
	m := tea.Model(NewModel(cfg))
	m = typeText(t, m, "나그네")
	m, _ = pressEnter(m)
	model := m.(Model)
	require.NoError(t, cfg.Limiter.RecordTurn())

	// Leave the chat, pick "delete records", confirm.
	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = pressEnter(next)
	model = next.(Model)

	assert.Equal(t, screenChat, model.screen)
	assert.Equal(t, limiter.MaxTurns, cfg.Limiter.Remaining(), "delete records clears the counter")
}

func TestEndScreenTalkMoreBlockedAtLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Limiter = limiter.NewWithMax(limiter.NewMemoryCounterStore(), 1)
	m := tea.Model(NewModel(cfg))
	m = typeText(t, m, "나그네")
	m, _ = pressEnter(m)
	require.NoError(t, cfg.Limiter.RecordTurn())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next, _ = pressEnter(next) // "talk more" with no turns left
	model := next.(Model)

	assert.Equal(t, screenEnd, model.screen)
	assert.Equal(t, cfg.Persona.LimitMessage, model.statusLine)
}

func TestViewsRenderKeyCopy(t *testing.T) {
	cfg := testConfig()
	m := tea.Model(NewModel(cfg))
	assert.Contains(t, m.View(), "수녀님과의 대화")

	m = typeText(t, m, "나그네")
	m, _ = pressEnter(m)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := sized.View()
	assert.Contains(t, view, "수녀님")
	assert.Contains(t, view, "남은 대화")

	next, _ := sized.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, next.View(), "오늘도 수고했어요")
}
