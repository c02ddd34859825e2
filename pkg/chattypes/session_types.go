// Package chattypes defines the shared types for templechat's bounded
// conversation sessions. This file contains the conversation-facing types:
// message roles, transcript messages, and the per-turn result union that the
// presentation layer renders.
package chattypes

import "time"

// Role identifies who authored a transcript message.
type Role string

const (
	// RoleUser marks a message typed by the user.
	RoleUser Role = "user"
	// RolePersona marks a message spoken by the persona (including errors
	// rendered in character).
	RolePersona Role = "persona"
)

// Message represents a single message in the conversation transcript.
// Messages are immutable once created and are owned by the presentation
// layer; the core never retains them.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// TurnResultKind discriminates the possible results of submitting a turn.
type TurnResultKind int

const (
	// TurnIgnored means the input was empty or whitespace-only and the
	// submission was a no-op: no counter change, no network call.
	TurnIgnored TurnResultKind = iota
	// TurnLimitReached means the turn budget is exhausted; the submission
	// was rejected before any counter change or network call.
	TurnLimitReached
	// TurnReply carries the persona's reply text.
	TurnReply
	// TurnError carries a human-readable message for a failed turn. The
	// turn has still been charged against the budget.
	TurnError
	// TurnBusy means a prior submission is still in flight; the new one
	// was rejected rather than queued.
	TurnBusy
)

// TurnResult is the discriminated outcome of Session.SubmitTurn.
// Text is the reply for TurnReply and the human-readable message for
// TurnError; it is empty for the other kinds.
type TurnResult struct {
	Kind TurnResultKind
	Text string
}

// IgnoredResult returns the no-op result for empty input.
func IgnoredResult() TurnResult { return TurnResult{Kind: TurnIgnored} }

// LimitReachedResult returns the terminal limit result.
func LimitReachedResult() TurnResult { return TurnResult{Kind: TurnLimitReached} }

// ReplyResult returns a successful reply result.
func ReplyResult(text string) TurnResult { return TurnResult{Kind: TurnReply, Text: text} }

// ErrorResult returns a failed-turn result with a renderable message.
func ErrorResult(message string) TurnResult { return TurnResult{Kind: TurnError, Text: message} }

// BusyResult returns the overlap-rejection result.
func BusyResult() TurnResult { return TurnResult{Kind: TurnBusy} }
