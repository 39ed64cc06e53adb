package services

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderMarkdown converts a post body to HTML for the detail endpoint.
func RenderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
