package publish

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML in catalog text is escaped; html.WithUnsafe stays off.
		html.WithHardWraps(),
	),
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{background:#0b0614;color:#e9e4ff;font:16px/1.6 ui-monospace,monospace;max-width:46rem;margin:3rem auto;padding:0 1rem}
a{color:#ff4fd8}h1,h2{color:#39f3ff}img{max-width:100%}
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderHTML converts press-kit markdown into a full HTML page.
func RenderHTML(title, src string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(strings.TrimSpace(src)), &body); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	err := pageTmpl.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		// goldmark output is trusted only because raw HTML is disabled above.
		Body: template.HTML(body.String()),
	})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
