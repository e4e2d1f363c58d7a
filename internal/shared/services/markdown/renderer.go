// Package markdown renders user-supplied ticket text to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer interface {
	ToHTML(markdown string) (string, error)
	Sanitize(htmlContent string) string
	// Render is ToHTML followed by Sanitize, typed for html/template.
	Render(markdown string) template.HTML
}

type renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &renderer{
		md:     md,
		policy: policy,
	}
}

func (r *renderer) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

func (r *renderer) Sanitize(htmlContent string) string {
	return r.policy.Sanitize(htmlContent)
}

// Render falls back to the escaped raw text if conversion fails.
func (r *renderer) Render(markdown string) template.HTML {
	out, err := r.ToHTML(markdown)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(markdown)) // #nosec G203
	}
	return template.HTML(r.Sanitize(out)) // #nosec G203
}
