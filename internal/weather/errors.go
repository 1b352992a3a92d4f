package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned when no OpenWeatherMap credential is
	// configured. Fatal to the calling operation, not to the process.
	ErrMissingAPIKey = errors.New("OPENWEATHER_API_KEY is not configured")

	// ErrMalformedPayload is returned when a provider response is missing
	// fields the formatter or aggregator requires.
	ErrMalformedPayload = errors.New("malformed weather provider payload")
)

// UpstreamError reports a non-success response from the weather provider.
type UpstreamError struct {
	StatusCode int
	Location   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("could not fetch weather for %q (%d)", e.Location, e.StatusCode)
}
