package content

import (
	"fmt"
	"strings"
)

const wordsPerMinute = 200

// ReadingMinutes returns the estimated reading time for a body in whole
// minutes, rounding up at 200 words per minute.
func ReadingMinutes(body string) int {
	words := len(strings.Fields(body))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// ReadingTime formats ReadingMinutes for display, e.g. "3 min read".
func ReadingTime(body string) string {
	return fmt.Sprintf("%d min read", ReadingMinutes(body))
}

// Anchor derives a heading anchor: lower-cased, with every run of
// non-alphanumeric characters collapsed to a single hyphen and no
// leading or trailing hyphen.
func Anchor(heading string) string {
	var b strings.Builder
	b.Grow(len(heading))
	pending := false
	for _, r := range strings.ToLower(heading) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('-')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Heading is one table-of-contents entry.
type Heading struct {
	Level  int    `json:"level"` // 2 or 3
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// TableOfContents extracts level-2 and level-3 headings from a Markdown
// body in document order. Headings inside fenced code blocks are ignored.
// The result is recomputed per call, never retained.
func TableOfContents(body string) []Heading {
	var out []Heading
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		var level int
		var title string
		switch {
		case strings.HasPrefix(trimmed, "### "):
			level, title = 3, trimmed[4:]
		case strings.HasPrefix(trimmed, "## "):
			level, title = 2, trimmed[3:]
		default:
			continue
		}
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		out = append(out, Heading{Level: level, Title: title, Anchor: Anchor(title)})
	}
	return out
}
