// Package session orchestrates one templechat conversation: it owns the
// transcript, enforces the turn limit, builds the persona prompt, and
// drives the completion client. All methods are safe for concurrent use.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"templechat/internal/limiter"
	"templechat/internal/logger"
	"templechat/internal/persona"
	"templechat/pkg/chattypes"
)

// Session is a single conversation with one persona. A session holds at
// most one completion call in flight; overlapping submissions are rejected
// rather than queued.
type Session struct {
	id        string
	persona   persona.Persona
	promptCfg chattypes.PersonaConfig
	limiter   *limiter.Limiter
	client    chattypes.CompletionClient

	mu       sync.Mutex
	inFlight bool
	messages []chattypes.Message
}

// New creates a session for the given persona and display name. The
// persona's greeting is seeded as the first transcript message.
func New(p persona.Persona, displayName string, lim *limiter.Limiter, client chattypes.CompletionClient) *Session {
	s := &Session{
		id:        uuid.New().String(),
		persona:   p,
		promptCfg: p.Config(displayName),
		limiter:   lim,
		client:    client,
	}
	if p.Greeting != "" {
		s.messages = append(s.messages, newMessage(chattypes.RolePersona, p.Greeting))
	}
	logger.Debug("session created", "session_id", s.id, "persona", p.ID, "provider", client.ProviderName())
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Persona returns the session's persona.
func (s *Session) Persona() persona.Persona {
	return s.persona
}

// SubmitTurn runs one full turn: validate the input, charge the turn
// counter, call the completion client, and record the reply. The turn is
// charged before the network call; a failed or cancelled call does not
// refund it. Whitespace-only input is ignored without any state change.
func (s *Session) SubmitTurn(ctx context.Context, text string) chattypes.TurnResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return chattypes.IgnoredResult()
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return chattypes.BusyResult()
	}
	if !s.limiter.CanSubmit() {
		s.mu.Unlock()
		return chattypes.LimitReachedResult()
	}
	if err := s.limiter.RecordTurn(); err != nil {
		s.mu.Unlock()
		logger.Error("failed to charge turn", "session_id", s.id, "error", err)
		return chattypes.ErrorResult(s.persona.ErrorPrefix)
	}
	s.inFlight = true
	s.messages = append(s.messages, newMessage(chattypes.RoleUser, trimmed))
	s.mu.Unlock()

	systemPrompt := persona.BuildSystemPrompt(s.promptCfg)
	outcome := s.client.Complete(ctx, systemPrompt, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if ctx.Err() != nil {
		logger.Debug("turn cancelled, reply discarded", "session_id", s.id)
		return chattypes.ErrorResult(s.persona.ErrorPrefix)
	}

	if outcome.IsFailure() {
		logger.Warn("completion failed", "session_id", s.id, "outcome", outcome.Describe())
		errMsg := newMessage(chattypes.RolePersona, s.persona.ErrorPrefix)
		s.messages = append(s.messages, errMsg)
		return chattypes.ErrorResult(s.persona.ErrorPrefix)
	}

	s.messages = append(s.messages, newMessage(chattypes.RolePersona, outcome.Text))
	return chattypes.ReplyResult(outcome.Text)
}

// Messages returns a copy of the transcript in order.
func (s *Session) Messages() []chattypes.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chattypes.Message(nil), s.messages...)
}

// RemainingTurns returns how many turns are left under the cap.
func (s *Session) RemainingTurns() int {
	return s.limiter.Remaining()
}

// LimitReached reports whether the turn cap has been exhausted.
func (s *Session) LimitReached() bool {
	return !s.limiter.CanSubmit()
}

// Reset clears the persisted turn counter and the transcript, reseeding
// the persona greeting. This is the delete-records action.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.limiter.Reset(); err != nil {
		return err
	}
	s.messages = nil
	if s.persona.Greeting != "" {
		s.messages = append(s.messages, newMessage(chattypes.RolePersona, s.persona.Greeting))
	}
	logger.Info("session reset", "session_id", s.id)
	return nil
}

func newMessage(role chattypes.Role, content string) chattypes.Message {
	return chattypes.Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}
