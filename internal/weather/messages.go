package weather

import (
	"errors"
	"strings"

	"github.com/vietddude/jokecast/internal/core/domain"
)

// User-facing weather panel messages.
const (
	MessageLocationDenied      = "Location access denied - please allow location access to see weather"
	MessageLocationUnavailable = "Unable to determine your location - please check your internet connection"
	MessageLocationTimeout     = "Location request timed out - please try again"
	MessageLocationDefault     = "Location error - please try again"
	MessageNotSupported        = "Geolocation not supported on this host"
	MessageNetworkTimeout      = "Weather request timed out - please try again"
	MessageNetworkUnavailable  = "Unable to connect to weather services - please check your internet connection"
	MessageWeatherAPIError     = "Weather service temporarily unavailable"
	MessageUnableToLoad        = "Unable to load weather information"
)

// ErrorMessage maps a LoadWeather failure to the text shown in the weather
// panel. Geolocation codes take priority, then network classification,
// then message heuristics.
func ErrorMessage(err error) string {
	if err == nil {
		return MessageUnableToLoad
	}

	var geoErr *domain.GeolocationError
	if errors.As(err, &geoErr) {
		switch geoErr.Code {
		case domain.GeolocationPermissionDenied:
			return MessageLocationDenied
		case domain.GeolocationPositionUnavailable:
			return MessageLocationUnavailable
		case domain.GeolocationTimeout:
			return MessageLocationTimeout
		case domain.GeolocationNotSupported:
			return MessageNotSupported
		default:
			return MessageLocationDefault
		}
	}

	if netErr, ok := domain.AsNetworkError(err); ok && netErr.IsNetworkError {
		if netErr.IsTimeout {
			return MessageNetworkTimeout
		}
		return MessageNetworkUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "geolocation not supported"):
		return MessageNotSupported
	case strings.Contains(msg, "weather api error"):
		return MessageWeatherAPIError
	default:
		return MessageUnableToLoad
	}
}
