package domain

import "strings"

// Section types recorded in a structure tree.
const (
	SectionHeading = "heading"
	SectionTable   = "table"
	SectionSheet   = "sheet"
	SectionSlide   = "slide"
	SectionPage    = "page"
)

// Section is one node of a structure tree: a heading-delimited span,
// a sheet, a slide or a page, with its ordered content lines.
type Section struct {
	// Title is the section heading, sheet name or slide title.
	// May be empty for untitled spans.
	Title string

	// Level is the heading level for prose sections, the 1-based
	// sheet/slide/page index otherwise.
	Level int

	// Type is one of the Section* constants.
	Type string

	// Content holds the section's text lines in document order.
	Content []string

	// HasNotes marks a slide section carrying speaker notes.
	HasNotes bool
}

// Text returns the section's content joined into a single block.
func (s Section) Text() string {
	return strings.Join(s.Content, "\n")
}

// IsEmpty reports whether the section has no content lines.
func (s Section) IsEmpty() bool {
	return len(s.Content) == 0
}

// Structure is the kind-tagged section tree an extractor produces for
// one document. It is a short-lived intermediate: created by the
// extractor, consumed by the chunker, never persisted.
type Structure struct {
	// Kind tags which extractor produced the tree.
	Kind Kind

	// Sections holds the ordered section nodes.
	Sections []Section
}
