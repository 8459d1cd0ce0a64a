package models

import "errors"

// Standard application-level errors. Adapters wrap underlying infrastructure
// errors with these so callers can classify failures with errors.Is.
var (
	// ErrInvalidInterval reports user-correctable input: an unparseable start
	// instant, a non-positive duration, or an unknown unit.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrUpstreamUnavailable reports a transport or HTTP failure on the bar
	// path, the only upstream failure surfaced to the caller.
	ErrUpstreamUnavailable = errors.New("upstream market data unavailable")

	// ErrNoData reports that neither ticks nor bars exist for the interval.
	ErrNoData = errors.New("no trades or bars found for interval")

	// ErrTooManyPages reports that tick pagination hit the configured page
	// cap before the provider stopped returning continuation tokens.
	ErrTooManyPages = errors.New("trade pagination exceeded page cap")
)
