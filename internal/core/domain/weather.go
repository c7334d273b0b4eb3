package domain

// Coordinates is a resolved device position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Observation holds the raw current conditions returned by the weather API.
type Observation struct {
	Temperature float64 `json:"temperature_2m"`
	Humidity    float64 `json:"relative_humidity_2m"`
	WindSpeed   float64 `json:"wind_speed_10m"`
	WeatherCode int     `json:"weather_code"`
}

// WeatherSnapshot is a fully resolved weather result ready for rendering.
type WeatherSnapshot struct {
	Temperature int    `json:"temperature"` // rounded, Celsius
	Description string `json:"description"`
	City        string `json:"city"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"` // rounded, km/h
	Code        int    `json:"code"`
}
