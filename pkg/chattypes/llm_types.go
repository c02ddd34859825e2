// This file contains types for the completion client abstraction: request
// parameters, the per-call outcome union, and the provider client interface.
package chattypes

import (
	"context"
	"fmt"
)

// Params holds the fixed generation parameters for completion requests.
// They are configuration constants for a session, not tunable per call.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// OutcomeKind discriminates the possible results of a completion call.
type OutcomeKind int

const (
	// OutcomeSuccess means the endpoint returned at least one choice.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeBlocked means the endpoint refused to complete the prompt
	// (e.g. a content filter finished the choice).
	OutcomeBlocked
	// OutcomeTransportFailure means no HTTP response was received at all:
	// DNS, TLS, timeout, connection refused, or cancellation.
	OutcomeTransportFailure
	// OutcomeServerFailure means the endpoint answered with a non-2xx
	// status; the status code and body are preserved for diagnostics.
	OutcomeServerFailure
	// OutcomeParseFailure means a 2xx response could not be decoded into
	// the expected shape, or carried no usable choice.
	OutcomeParseFailure
)

// Outcome is the discriminated result of a single completion round trip.
// Text is set only for OutcomeSuccess; StatusCode only for
// OutcomeServerFailure; Detail for every failure kind.
type Outcome struct {
	Kind       OutcomeKind
	Text       string
	StatusCode int
	Detail     string
}

// SuccessOutcome returns a successful outcome carrying the reply text.
func SuccessOutcome(text string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Text: text}
}

// BlockedOutcome returns the refusal outcome.
func BlockedOutcome(detail string) Outcome {
	return Outcome{Kind: OutcomeBlocked, Detail: detail}
}

// TransportFailureOutcome returns a transport-level failure outcome.
func TransportFailureOutcome(detail string) Outcome {
	return Outcome{Kind: OutcomeTransportFailure, Detail: detail}
}

// ServerFailureOutcome returns a non-2xx failure outcome preserving the
// status code and response body.
func ServerFailureOutcome(statusCode int, body string) Outcome {
	return Outcome{Kind: OutcomeServerFailure, StatusCode: statusCode, Detail: body}
}

// ParseFailureOutcome returns a malformed-response failure outcome.
func ParseFailureOutcome(detail string) Outcome {
	return Outcome{Kind: OutcomeParseFailure, Detail: detail}
}

// IsFailure reports whether the outcome is anything other than success.
func (o Outcome) IsFailure() bool {
	return o.Kind != OutcomeSuccess
}

// Describe returns a short diagnostic string for the outcome. It is meant
// for logs and error messages, not for rendering verbatim to the user.
func (o Outcome) Describe() string {
	switch o.Kind {
	case OutcomeSuccess:
		return "success"
	case OutcomeBlocked:
		return fmt.Sprintf("blocked: %s", o.Detail)
	case OutcomeTransportFailure:
		return fmt.Sprintf("transport failure: %s", o.Detail)
	case OutcomeServerFailure:
		return fmt.Sprintf("server failure (HTTP %d): %s", o.StatusCode, o.Detail)
	case OutcomeParseFailure:
		return fmt.Sprintf("parse failure: %s", o.Detail)
	default:
		return "unknown outcome"
	}
}

// CompletionClient defines the interface for completion provider
// implementations. A client performs exactly one network round trip per
// Complete call and never retries; every failure mode is folded into the
// returned Outcome rather than an error.
type CompletionClient interface {
	// Complete sends one chat completion request with the given system and
	// user prompts. The context cancels the in-flight call; a cancelled
	// call yields a transport failure outcome.
	Complete(ctx context.Context, systemPrompt, userPrompt string) Outcome

	// ProviderName returns the name of the completion provider
	// (e.g. "openai", "anthropic").
	ProviderName() string

	// IsConfigured returns true if the client has valid configuration and
	// can make requests.
	IsConfigured() bool
}
