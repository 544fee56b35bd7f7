// Package markup turns rich-text note content into plain text.
package markup

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Strip replaces every tag with a single space and leaves everything else,
// entities included, untouched. This is what is sent to the model.
func Strip(content string) string {
	return tagRe.ReplaceAllString(content, " ")
}

// PlainText strips tags, decodes entities and collapses runs of whitespace.
// It is used for substring matching, not for display.
func PlainText(content string) string {
	text := html.UnescapeString(Strip(content))
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
