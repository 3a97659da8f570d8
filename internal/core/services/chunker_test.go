package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

// proseText builds n characters of period-free filler so overlap
// positions are fully predictable.
func proseText(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + i%23)
	}
	return string(b)
}

func TestChunker_EmptyText(t *testing.T) {
	c := NewChunker()

	assert.Nil(t, c.Chunk("", nil, domain.DocumentInfo{}, ""))
	assert.Nil(t, c.Chunk("   \n\t", nil, domain.DocumentInfo{}, ""))
}

func TestChunker_Slides(t *testing.T) {
	c := NewChunker()
	structure := &domain.Structure{
		Kind: domain.KindPresentation,
		Sections: []domain.Section{
			{Title: "Welcome", Level: 1, Type: domain.SectionSlide, Content: []string{"Agenda for today"}},
			{Level: 2, Type: domain.SectionSlide, Content: []string{"Revenue grew 12%"}, HasNotes: true},
			{Title: "Questions", Level: 3, Type: domain.SectionSlide},
			{Level: 4, Type: domain.SectionSlide},
		},
	}

	chunks := c.Chunk("Slide 1: Welcome", structure, domain.DocumentInfo{Name: "deck.pptx"}, "")

	require.Len(t, chunks, 3, "only a slide with neither title nor content is dropped")

	assert.Equal(t, "Slide 1", chunks[0].Section)
	assert.Equal(t, "Welcome", chunks[0].Subsection)
	assert.Equal(t, domain.ChunkTypeSlide, chunks[0].Type)
	assert.Equal(t, "Welcome\nAgenda for today", chunks[0].Text, "title leads the chunk text")
	assert.Empty(t, chunks[0].Tags)

	assert.Equal(t, "Slide 2", chunks[1].Section)
	assert.Empty(t, chunks[1].Subsection)
	assert.Equal(t, "Revenue grew 12%", chunks[1].Text)
	assert.Contains(t, chunks[1].Tags, "speaker_notes")

	assert.Equal(t, "Slide 3", chunks[2].Section)
	assert.Equal(t, "Questions", chunks[2].Text, "a title-only slide still yields a chunk")
}

func TestChunker_TitleOnlyDeck(t *testing.T) {
	c := NewChunker()
	structure := &domain.Structure{
		Kind: domain.KindPresentation,
		Sections: []domain.Section{
			{Title: "Intro", Level: 1, Type: domain.SectionSlide},
			{Title: "Pricing", Level: 2, Type: domain.SectionSlide},
			{Title: "Q&A", Level: 3, Type: domain.SectionSlide},
		},
	}

	chunks := c.Chunk("Slide 1:\nIntro\nSlide 2:\nPricing\nSlide 3:\nQ&A", structure, domain.DocumentInfo{Name: "deck.pptx"}, "")

	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.Equal(t, fmt.Sprintf("Slide %d", i+1), chunk.Section)
		assert.Equal(t, domain.ChunkTypeSlide, chunk.Type)
	}
	assert.Equal(t, "Intro", chunks[0].Text)
	assert.Equal(t, "Pricing", chunks[1].Text)
	assert.Equal(t, "Q&A", chunks[2].Text)
}

func TestChunker_Sheets(t *testing.T) {
	c := NewChunker()
	structure := &domain.Structure{
		Kind: domain.KindSpreadsheet,
		Sections: []domain.Section{
			{Title: "Budget", Level: 1, Type: domain.SectionSheet, Content: []string{"Item | Cost", "Laptop | 1200"}},
			{Title: "Notes", Level: 2, Type: domain.SectionSheet},
		},
	}

	chunks := c.Chunk("Sheet: Budget", structure, domain.DocumentInfo{Name: "budget.xlsx"}, "")

	require.Len(t, chunks, 1)
	assert.Equal(t, "Sheet: Budget", chunks[0].Section)
	assert.Equal(t, domain.ChunkTypeSpreadsheet, chunks[0].Type)
	assert.Equal(t, "Item | Cost\nLaptop | 1200", chunks[0].Text)
}

func TestChunker_ProseSections(t *testing.T) {
	c := NewChunker()
	structure := &domain.Structure{
		Kind: domain.KindWord,
		Sections: []domain.Section{
			{Title: "Introduction", Level: 1, Type: domain.SectionHeading, Content: []string{"Short intro."}},
			{Title: "Scope", Level: 2, Type: domain.SectionHeading, Content: []string{"What is covered."}},
			{Title: "Blank", Level: 2, Type: domain.SectionHeading, Content: []string{"   "}},
		},
	}

	chunks := c.Chunk("whole text", structure, domain.DocumentInfo{Name: "doc.docx"}, "")

	require.Len(t, chunks, 2)
	assert.Equal(t, "Introduction", chunks[0].Section)
	assert.Equal(t, domain.ChunkTypeText, chunks[0].Type)
	assert.Equal(t, "Scope", chunks[1].Section)
}

func TestChunker_TableSection(t *testing.T) {
	c := NewChunker()
	structure := &domain.Structure{
		Kind: domain.KindWord,
		Sections: []domain.Section{
			{Title: "Table 1", Type: domain.SectionTable, Content: []string{"Name | Value", "Alpha | 1"}},
		},
	}

	chunks := c.Chunk("table text", structure, domain.DocumentInfo{Name: "doc.docx"}, "")

	require.Len(t, chunks, 1)
	assert.Equal(t, domain.ChunkTypeTable, chunks[0].Type)
	assert.Equal(t, []string{"table"}, chunks[0].Tags)
}

func TestChunker_LongSectionSplitsWithOverlap(t *testing.T) {
	c := NewChunker()
	text := proseText(4000)
	structure := &domain.Structure{
		Kind: domain.KindWord,
		Sections: []domain.Section{
			{Title: "Body", Type: domain.SectionHeading, Content: []string{text}},
		},
	}

	chunks := c.Chunk(text, structure, domain.DocumentInfo{Name: "doc.docx"}, "")

	// Windows of 1500 advancing by 1300: [0,1500) [1300,2800) [2600,4000)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0].Text, DefaultChunkSize)
	assert.Len(t, chunks[1].Text, DefaultChunkSize)
	assert.Len(t, chunks[2].Text, 4000-2*(DefaultChunkSize-DefaultChunkOverlap))

	for _, chunk := range chunks {
		assert.Equal(t, "Body", chunk.Section)
	}

	// Consecutive chunks share the overlap region
	overlap := chunks[0].Text[DefaultChunkSize-DefaultChunkOverlap:]
	assert.Equal(t, overlap, chunks[1].Text[:DefaultChunkOverlap])
}

func TestChunker_SplitCutsAtSentenceBoundary(t *testing.T) {
	c := NewChunker(WithChunkSize(100), WithOverlap(20))

	// A sentence boundary inside the final 20% of the first window
	text := strings.Repeat("x", 90) + ". " + strings.Repeat("y", 60)
	pieces := c.splitWithOverlap(text)

	require.Len(t, pieces, 2)
	assert.True(t, strings.HasSuffix(pieces[0], "."))
	assert.True(t, strings.HasSuffix(pieces[1], "y"))
}

func TestChunker_Paragraphs(t *testing.T) {
	c := NewChunker(WithChunkSize(50), WithOverlap(10))

	p1 := strings.Repeat("a", 30)
	p2 := strings.Repeat("b", 30)
	p3 := strings.Repeat("c", 10)
	text := p1 + "\n\n" + p2 + "\n\n" + p3

	chunks := c.Chunk(text, nil, domain.DocumentInfo{Name: "notes.pdf"}, "")

	require.Len(t, chunks, 3)
	assert.Equal(t, p1, chunks[0].Text)
	// The trailing paragraph of each chunk seeds the next one
	assert.Equal(t, p1+"\n\n"+p2, chunks[1].Text)
	assert.Equal(t, p2+"\n\n"+p3, chunks[2].Text)
	for _, chunk := range chunks {
		assert.Equal(t, domain.ChunkTypeText, chunk.Type)
	}
}

func TestChunker_NoSectionsFallsBackToParagraphs(t *testing.T) {
	c := NewChunker()
	structure := &domain.Structure{Kind: domain.KindWord}

	chunks := c.Chunk("First paragraph.\n\nSecond paragraph.", structure, domain.DocumentInfo{Name: "doc.docx"}, "")

	require.Len(t, chunks, 1)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", chunks[0].Text)
}

func TestChunker_WholeTextFallback(t *testing.T) {
	c := NewChunker()

	// Every slide is blank, so type-specific chunking yields nothing
	structure := &domain.Structure{
		Kind:     domain.KindPresentation,
		Sections: []domain.Section{{Level: 1, Type: domain.SectionSlide}},
	}

	chunks := c.Chunk("orphaned text", structure, domain.DocumentInfo{Name: "deck.pptx"}, "")

	require.Len(t, chunks, 1)
	assert.Equal(t, "orphaned text", chunks[0].Text)
	assert.Equal(t, domain.ChunkTypeText, chunks[0].Type)
}

func TestChunker_SummaryAndConfidence(t *testing.T) {
	c := NewChunker()
	doc := domain.DocumentInfo{Name: "report.docx"}

	chunks := c.Chunk("some text", nil, doc, "Quarterly results overview.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "report.docx: Quarterly results overview.", chunks[0].Summary)
	assert.Equal(t, 1.0, chunks[0].Confidence)

	chunks = c.Chunk("some text", nil, doc, "")
	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Summary)
	assert.Equal(t, 1.0, chunks[0].Confidence)
}

func TestNewChunker_OverlapClamp(t *testing.T) {
	c := NewChunker(WithChunkSize(100), WithOverlap(100))

	assert.Equal(t, 100, c.chunkSize)
	assert.Equal(t, 25, c.overlap, "overlap at or above the window collapses to a quarter of it")
}
