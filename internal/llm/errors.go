package llm

import (
	"context"
	"errors"
	"net/url"

	"templechat/pkg/chattypes"
)

// classifySDKError maps a non-API error from an SDK-backed client into the
// outcome union: context cancellation and URL-level failures are transport
// failures; anything else (typically a body the SDK could not decode) is a
// parse failure.
func classifySDKError(err error) chattypes.Outcome {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return chattypes.TransportFailureOutcome(err.Error())
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return chattypes.TransportFailureOutcome(err.Error())
	}
	return chattypes.ParseFailureOutcome(err.Error())
}
