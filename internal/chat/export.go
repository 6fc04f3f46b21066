package chat

import (
	"html/template"
	"io"

	"editdesk-cli/internal/markup"
	"editdesk-cli/internal/store"
)

var transcriptTmpl = template.Must(template.New("transcript").Funcs(template.FuncMap{
	"markup": markup.HTML,
}).Parse(`<!doctype html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>editdesk chat</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; }
.message { padding: .5rem .75rem; margin: .5rem 0; border-radius: .5rem; }
.user { background: #e8f0fe; text-align: right; }
.ai { background: #f4f4f4; }
.error { background: #fdecea; color: #9c0006; }
time { display: block; font-size: .75rem; color: #777; }
</style>
</head>
<body>
{{- range .}}
<div class="message {{.Role}}"><time>{{.CreatedAt.Format "2006-01-02 15:04"}}</time>
{{- if eq .Role "ai"}}{{markup .Content}}{{else}}<p>{{.Content}}</p>{{end}}</div>
{{- end}}
</body>
</html>
`))

// WriteHTML renders a saved transcript as a standalone HTML page.
func WriteHTML(w io.Writer, msgs []store.ChatMessage) error {
	return transcriptTmpl.Execute(w, msgs)
}
