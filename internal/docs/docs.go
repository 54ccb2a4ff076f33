// Package docs holds the documents shown in the text viewer. They are
// embedded from the markdown files next to this one.
package docs

import (
	_ "embed"
	"regexp"
	"strings"
)

//go:embed terms.md
var Terms string

//go:embed api.md
var API string

// Section is one "## " headed part of a document.
type Section struct {
	Title string
	Body  string
}

var headingRegex = regexp.MustCompile(`^##\s+(.+?)\s*$`)

// Parse splits markdown content into sections. Text before the first
// heading becomes a section with an empty title. Fenced code blocks are
// kept whole, even when they contain lines that look like headings.
func Parse(content string) []Section {
	var sections []Section
	var current *Section
	var body []string
	inFence := false

	flush := func() {
		if current != nil {
			current.Body = strings.Trim(strings.Join(body, "\n"), "\n")
			sections = append(sections, *current)
		}
		body = body[:0]
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
		}
		if !inFence {
			if m := headingRegex.FindStringSubmatch(line); m != nil {
				flush()
				current = &Section{Title: m[1]}
				continue
			}
		}
		if current == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			current = &Section{}
		}
		body = append(body, line)
	}
	flush()

	return sections
}
