package services

import (
	"strings"
	"unicode/utf8"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

// summaryPreambleLimit caps how much of the document summary is carried
// into the contextual preamble.
const summaryPreambleLimit = 200

// siblingSampleSize caps how many sibling document names are included.
const siblingSampleSize = 3

// Contextualise builds the embedding input for a chunk: a pipe-joined
// preamble of document name, folder, section, truncated summary and a
// sample of sibling document names, followed by the chunk's verbatim
// text under a Content marker.
//
// The returned string exists only to be embedded. The chunk's Text is
// what gets stored and displayed; the two must never be conflated.
func Contextualise(chunk domain.Chunk, doc domain.DocumentInfo, summary string, h Hierarchy) string {
	parts := []string{"Document: " + doc.Name}

	if folder := doc.Folder(); folder != domain.RootFolder {
		parts = append(parts, "Folder: "+folder)
	}

	if chunk.Section != "" {
		parts = append(parts, "Section: "+chunk.Section)
	}

	if summary != "" {
		parts = append(parts, "Summary: "+truncate(summary, summaryPreambleLimit))
	}

	if siblings := h.Siblings(doc.Folder(), doc.Name, siblingSampleSize); len(siblings) > 0 {
		parts = append(parts, "Related documents: "+strings.Join(siblings, ", "))
	}

	return strings.Join(parts, " | ") + "\nContent: " + chunk.Text
}

// truncate cuts s to at most n bytes, backing up to a rune boundary so
// the result stays valid UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
