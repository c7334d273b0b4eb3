package weather

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/vietddude/jokecast/internal/core/domain"
)

// LoadingText is shown while the weather panel loads.
const LoadingText = "Loading climate..."

var (
	contentTmpl = template.Must(template.New("content").Parse(
		`<div class="weather-content">` +
			`<div class="weather-icon">{{.Icon}}</div>` +
			`<div class="weather-temp">{{.Temperature}}°C</div>` +
			`<div class="weather-description">{{.Description}}</div>` +
			`<div class="weather-city">{{.City}}</div>` +
			`</div>`))
	errorTmpl   = template.Must(template.New("error").Parse(`<div class="weather-error">{{.}}</div>`))
	loadingTmpl = template.Must(template.New("loading").Parse(`<div class="weather-loading">{{.}}</div>`))
)

// Render produces the weather panel HTML for a snapshot.
func Render(s domain.WeatherSnapshot) string {
	return execute(contentTmpl, struct {
		domain.WeatherSnapshot
		Icon string
	}{s, Icon(s.Description)})
}

// RenderError produces the weather panel HTML for an error message.
func RenderError(message string) string {
	return execute(errorTmpl, message)
}

// RenderLoading produces the weather panel HTML shown while loading.
func RenderLoading() string {
	return execute(loadingTmpl, LoadingText)
}

func execute(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		slog.Error("Failed to render weather panel", "template", t.Name(), "error", err)
		return ""
	}
	return buf.String()
}
