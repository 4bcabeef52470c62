package transform

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// Safe for concurrent use once built.
var htmlPolicy = bluemonday.UGCPolicy()

// MarkdownToHTML renders Markdown and strips anything unsafe (scripts, event
// handlers, javascript: links) from the resulting HTML.
func MarkdownToHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML([]byte(md), p, renderer)
	return string(htmlPolicy.SanitizeBytes(out))
}
