package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

func TestContextualise(t *testing.T) {
	doc := domain.DocumentInfo{Name: "q3-report.docx", Path: "Finance/Reports"}
	chunk := domain.Chunk{Text: "Revenue grew 12% quarter on quarter.", Section: "Results"}
	h := Hierarchy{
		"Finance/Reports": {"q3-report.docx", "q2-report.docx", "forecast.xlsx"},
	}

	got := Contextualise(chunk, doc, "Quarterly financial results.", h)

	preamble, content, found := strings.Cut(got, "\nContent: ")
	assert.True(t, found)
	assert.Equal(t, chunk.Text, content, "content must be the verbatim chunk text")

	assert.Equal(t,
		"Document: q3-report.docx | Folder: Finance/Reports | Section: Results | "+
			"Summary: Quarterly financial results. | Related documents: q2-report.docx, forecast.xlsx",
		preamble)
}

func TestContextualise_Minimal(t *testing.T) {
	doc := domain.DocumentInfo{Name: "notes.pdf"}
	chunk := domain.Chunk{Text: "Some notes."}

	got := Contextualise(chunk, doc, "", BuildHierarchy([]domain.DocumentInfo{doc}))

	// Root folder, empty section and empty summary all drop out,
	// and the document is not its own sibling.
	assert.Equal(t, "Document: notes.pdf\nContent: Some notes.", got)
}

func TestContextualise_TruncatesSummary(t *testing.T) {
	doc := domain.DocumentInfo{Name: "long.docx"}
	chunk := domain.Chunk{Text: "text"}
	summary := strings.Repeat("s", summaryPreambleLimit+50)

	got := Contextualise(chunk, doc, summary, nil)

	assert.Contains(t, got, "Summary: "+strings.Repeat("s", summaryPreambleLimit)+"\n")
	assert.NotContains(t, got, strings.Repeat("s", summaryPreambleLimit+1))
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the cut must be dropped whole.
	s := strings.Repeat("a", 199) + "é" // é is 2 bytes, crosses the 200-byte mark
	got := truncate(s, 200)

	assert.Equal(t, strings.Repeat("a", 199), got)
	assert.True(t, utf8.ValidString(got))

	multi := strings.Repeat("ü", 150) // 300 bytes
	got = truncate(multi, 201)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("ü", 100), got)

	assert.Equal(t, "short", truncate("short", 200))
}

func TestContextualise_SiblingSample(t *testing.T) {
	docs := []domain.DocumentInfo{
		{Name: "a.docx"}, {Name: "b.docx"}, {Name: "c.docx"}, {Name: "d.docx"}, {Name: "e.docx"},
	}
	got := Contextualise(domain.Chunk{Text: "t"}, docs[0], "", BuildHierarchy(docs))

	assert.Contains(t, got, "Related documents: b.docx, c.docx, d.docx")
	assert.NotContains(t, got, "e.docx")
}
