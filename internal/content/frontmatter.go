// Package content loads, validates, orders, and derives views from the
// Markdown content files that make up the site: blog posts, work
// experience entries, and ventures.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var errNoFrontmatter = errors.New("missing frontmatter header")

// splitFrontmatter separates the YAML metadata header (between leading
// --- delimiters) from the Markdown body. Unlike a wiki, every content
// file must carry a header: a file without one, or with one that is not
// valid YAML, is rejected so that no partial record ever reaches the
// presentation layer.
func splitFrontmatter(data []byte) (header []byte, body string, err error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, "", errNoFrontmatter
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, "", fmt.Errorf("frontmatter not closed with %q", delim)
	}

	header = rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body = strings.TrimLeft(string(afterDelim), "\n\r")
	return header, body, nil
}

// decodeHeader unmarshals the YAML header block into a typed per-category
// header struct.
func decodeHeader(header []byte, out any) error {
	if err := yaml.Unmarshal(header, out); err != nil {
		return fmt.Errorf("invalid frontmatter yaml: %w", err)
	}
	return nil
}
