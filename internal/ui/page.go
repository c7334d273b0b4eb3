package ui

import (
	"html/template"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Jokecast</title>
</head>
<body>
<section class="weather">{{.Weather}}</section>
<section class="joke">
{{- if .Loading}}
<p class="joke-loading">Loading joke...</p>
{{- else if .Error}}
<p class="joke-error">{{.Error}}</p>
{{- else if .Joke}}
<p class="joke-text">{{.Joke}}</p>
{{- else}}
<p class="joke-loading">Loading first joke...</p>
{{- end}}
</section>
<section class="score">
{{- range .Scores}}
<form method="post" action="/score">
<button name="score" value="{{.}}"{{if eq . $.Selected}} class="selected"{{end}}>{{.}}</button>
</form>
{{- end}}
</section>
<form method="post" action="/next"><button>Next joke</button></form>
</body>
</html>
`))

type pageData struct {
	Joke     string
	Error    string
	Loading  bool
	Weather  template.HTML
	Scores   []int
	Selected int
}
