package domain

import "errors"

var (
	// ErrNotFound means a definitive lookup miss: the key or event does not
	// exist where it was searched for.
	ErrNotFound = errors.New("not found")

	// ErrNotSettledYet is a legitimate business state, not a failure: the event
	// has not concluded, or the provider has listed it without period scores.
	ErrNotSettledYet = errors.New("event not settled yet")

	// ErrRateLimited is returned when the provider answers 429.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrProviderUnavailable covers timeouts, connection failures, and 5xx
	// responses from the provider.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedResponse means the provider returned a payload that could not
	// be decoded into the expected shape.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrMissingTeams means a bet record carries neither structured team names
	// nor a usable free-text hint; the record is skipped, never retried.
	ErrMissingTeams = errors.New("bet has no team or sport information")
)

// IsTransient reports whether err should be retried on a later cycle rather
// than treated as a terminal failure. Malformed responses count as transient:
// the provider occasionally serves truncated pages under load.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrProviderUnavailable) ||
		errors.Is(err, ErrMalformedResponse)
}
