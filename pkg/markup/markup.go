// Package markup renders the markdown found in site and archive descriptions
// into sanitized HTML.
package markup

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md           goldmark.Markdown
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initRenderer() {
	initOnce.Do(func() {
		md = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)

		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.AllowAttrs("src", "alt", "title").OnElements("img")
		safePolicy.RequireNoFollowOnLinks(true)
		safePolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// Render converts markdown to HTML and strips anything unsafe. Raw HTML in
// the input never survives.
func Render(markdown string) (string, error) {
	initRenderer()

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return safePolicy.Sanitize(buf.String()), nil
}

// StripTags removes all HTML, leaving text.
func StripTags(s string) string {
	initRenderer()
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// Excerpt renders markdown to plain text and cuts it to at most limit runes,
// breaking on a word boundary and appending "…" when cut.
func Excerpt(markdown string, limit int) (string, error) {
	html, err := Render(markdown)
	if err != nil {
		return "", err
	}
	text := strings.Join(strings.Fields(StripTags(html)), " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text, nil
	}

	runes := []rune(text)
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…", nil
}
