// Package richtext renders the free-form multi-line fields of a club profile
// (activity summary, recruitment text, impressions) to safe HTML.
package richtext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to sanitised HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New returns a Renderer. Single newlines become <br> because club data is
// written as plain lines rather than markdown paragraphs.
func New() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		md:     goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		policy: policy,
	}
}

// Render returns the sanitised HTML for src. Blank input renders to "".
func (r *Renderer) Render(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("richtext.Render: %w", err)
	}
	return strings.TrimSpace(string(r.policy.SanitizeBytes(buf.Bytes()))), nil
}

var std = New()

// Render renders src with a shared default Renderer.
func Render(src string) (string, error) {
	return std.Render(src)
}
