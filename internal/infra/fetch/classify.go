package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/vietddude/jokecast/internal/core/domain"
)

// networkKeywords mark an error message as a transport failure.
var networkKeywords = []string{
	"failed to fetch",
	"networkerror",
	"connection refused",
	"network request failed",
	"load failed",
	"dns",
	"unreachable",
	"connection timeout",
	"network error",
	"connection failed",
}

var timeoutKeywords = []string{
	"timeout",
	"timed out",
}

// Classify turns any failure of an outbound call into a NetworkError.
// Rules are applied in order and the first match wins. Unrecognized
// failures default to retryable network errors.
func Classify(err error, offline bool) *domain.NetworkError {
	if err == nil {
		return nil
	}

	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		return netErr
	}

	msg := err.Error()
	classified := &domain.NetworkError{
		Message:        msg,
		IsNetworkError: true,
		Err:            err,
	}

	// Cancellation or deadline
	if isTimeout(err) {
		classified.IsTimeout = true
		return classified
	}

	// Low-level transport failure
	if isTransportError(err) {
		return classified
	}

	lower := strings.ToLower(msg)
	if containsAny(lower, networkKeywords) {
		return classified
	}
	if containsAny(lower, timeoutKeywords) {
		classified.IsTimeout = true
		return classified
	}

	if offline {
		classified.Message = "network is offline: " + msg
		return classified
	}

	// Default to retry
	return classified
}

// IsNetwork reports whether err carries a network-classified NetworkError.
func IsNetwork(err error) bool {
	netErr, ok := domain.AsNetworkError(err)
	return ok && netErr.IsNetworkError
}

// IsTimeout reports whether err carries a timed out NetworkError.
func IsTimeout(err error) bool {
	netErr, ok := domain.AsNetworkError(err)
	return ok && netErr.IsTimeout
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isTransportError(err error) bool {
	var (
		urlErr *url.Error
		opErr  *net.OpError
		dnsErr *net.DNSError
	)
	switch {
	case errors.As(err, &urlErr), errors.As(err, &opErr), errors.As(err, &dnsErr):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return true
	case errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}
	return false
}

func containsAny(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(s, pattern) {
			return true
		}
	}
	return false
}

func errorType(err *domain.NetworkError) string {
	switch {
	case err == nil:
		return "none"
	case err.IsTimeout:
		return "timeout"
	case err.IsNetworkError:
		return "network"
	default:
		return "api"
	}
}
