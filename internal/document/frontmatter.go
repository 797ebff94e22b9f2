package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter returns the lines of the document's leading YAML metadata
// block, without the separators. The block starts after the first line
// containing only three dashes and runs to the next such line, or to end
// of file when the closing separator is missing. ok is false when the
// document has no opening separator at all; malformed structure is never
// an error.
func FrontMatter(content []byte) (block []byte, ok bool) {
	lines := Lines(content)

	start := -1
	for i, line := range lines {
		if isSeparator(line) {
			start = i + 1
			break
		}
	}
	if start == -1 {
		return nil, false
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if isSeparator(lines[i]) {
			end = i
			break
		}
	}

	return []byte(strings.Join(lines[start:end], "\n")), true
}

// isSeparator reports whether a line is a front-matter delimiter.
func isSeparator(line string) bool {
	return strings.TrimSpace(line) == "---"
}

// Meta decodes a document's front matter into a generic map. Documents
// without front matter return a nil map and no error.
func Meta(content []byte) (map[string]any, error) {
	block, ok := FrontMatter(content)
	if !ok {
		return nil, nil
	}

	var meta map[string]any
	if err := yaml.Unmarshal(block, &meta); err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}
	return meta, nil
}

// Title returns the front-matter title of a document, or "" when absent
// or not decodable.
func Title(content []byte) string {
	meta, err := Meta(content)
	if err != nil {
		return ""
	}
	if title, ok := meta["title"].(string); ok {
		return title
	}
	return ""
}
