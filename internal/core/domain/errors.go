package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrAllJokeProvidersUnavailable is returned when both joke providers failed.
var ErrAllJokeProvidersUnavailable = errors.New("All joke services are temporarily unavailable")

// NetworkError is the single error type surfaced by outbound HTTP calls.
// IsNetworkError separates transient transport failures (retried) from
// completed responses carrying an error status (never retried).
type NetworkError struct {
	Message        string
	IsNetworkError bool
	IsTimeout      bool
	StatusCode     int // 0 when no response was received
	Err            error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 && !strings.Contains(e.Message, strconv.Itoa(e.StatusCode)) {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth another attempt.
func (e *NetworkError) Retryable() bool {
	return e.IsNetworkError
}

// AsNetworkError extracts a *NetworkError from an error chain.
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}

// GeolocationCode mirrors the host geolocation error codes.
type GeolocationCode int

const (
	GeolocationPermissionDenied    GeolocationCode = 1
	GeolocationPositionUnavailable GeolocationCode = 2
	GeolocationTimeout             GeolocationCode = 3
	GeolocationNotSupported        GeolocationCode = 4 // no locator on this host
)

func (c GeolocationCode) String() string {
	switch c {
	case GeolocationPermissionDenied:
		return "PERMISSION_DENIED"
	case GeolocationPositionUnavailable:
		return "POSITION_UNAVAILABLE"
	case GeolocationTimeout:
		return "TIMEOUT"
	case GeolocationNotSupported:
		return "NOT_SUPPORTED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(c))
	}
}

// GeolocationError is returned when the device position cannot be resolved.
type GeolocationError struct {
	Code    GeolocationCode
	Message string
	Err     error
}

func (e *GeolocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("geolocation %s: %s", e.Code, e.Message)
}

func (e *GeolocationError) Unwrap() error {
	return e.Err
}
