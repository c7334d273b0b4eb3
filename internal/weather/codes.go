package weather

import "strings"

// UnknownWeather describes codes outside the WMO table below.
const UnknownWeather = "Unknown weather"

// weatherCodes maps WMO weather interpretation codes to descriptions.
var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Rain showers",
	95: "Thunderstorm",
}

// Describe returns the human description of a weather code.
func Describe(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}
	return UnknownWeather
}

// Icon picks an emoji for a weather description.
func Icon(description string) string {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "clear"):
		return "☀️"
	case strings.Contains(desc, "cloud"), strings.Contains(desc, "overcast"):
		return "☁️"
	case strings.Contains(desc, "rain"), strings.Contains(desc, "drizzle"):
		return "🌧️"
	case strings.Contains(desc, "snow"):
		return "❄️"
	case strings.Contains(desc, "thunderstorm"):
		return "⛈️"
	case strings.Contains(desc, "fog"):
		return "🌫️"
	default:
		return "🌤️"
	}
}
