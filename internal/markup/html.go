package markup

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var htmlRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		// Raw HTML in replies is dropped; html.WithUnsafe is deliberately not set.
		html.WithHardWraps(),
	),
)

// HTML renders md to an HTML fragment. Raw HTML in md is not passed through.
func HTML(md string) template.HTML {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	var b bytes.Buffer
	if err := htmlRenderer.Convert([]byte(md), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(md) + "</pre>")
	}
	// Trusted only because raw HTML is disabled above.
	return template.HTML(b.String())
}
