package services

import (
	"fmt"
	"strings"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

// Chunking parameters. Sections at or below the threshold become a
// single chunk; longer sections are split with overlap so consecutive
// chunks share trailing context.
const (
	// DefaultChunkSize is the window size for overlap chunking.
	DefaultChunkSize = 1500

	// DefaultChunkOverlap is the number of characters consecutive
	// chunks share.
	DefaultChunkOverlap = 200
)

// sentenceBoundary is what overlap chunking cuts at when it can.
const sentenceBoundary = ". "

// Chunker converts a document's extracted text and structure tree into
// an ordered sequence of chunk records. Chunking is type-aware: one
// chunk per slide for presentations, one per sheet for spreadsheets,
// structure-aware overlap chunking for prose.
type Chunker struct {
	chunkSize int
	overlap   int
}

// ChunkerOption configures a Chunker.
type ChunkerOption func(*Chunker)

// WithChunkSize sets the overlap-chunking window size in characters.
func WithChunkSize(size int) ChunkerOption {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) ChunkerOption {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// NewChunker creates a chunker with the given options.
func NewChunker(opts ...ChunkerOption) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave the window room to advance
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits a document into chunk records. For non-empty text the
// result is never empty: when type-specific chunking yields nothing, a
// single chunk wrapping the whole text is produced. Every chunk carries
// a copy of the document summary (prefixed with the document name) and
// a default confidence of 1.0.
func (c *Chunker) Chunk(text string, structure *domain.Structure, doc domain.DocumentInfo, summary string) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []domain.Chunk
	if structure != nil {
		switch structure.Kind {
		case domain.KindPresentation:
			chunks = c.chunkSlides(structure)
		case domain.KindSpreadsheet:
			chunks = c.chunkSheets(structure)
		default:
			chunks = c.chunkProse(text, structure)
		}
	} else {
		chunks = c.chunkParagraphs(text)
	}

	// Never lose a document: fall back to one chunk of everything
	if len(chunks) == 0 {
		chunks = []domain.Chunk{{Text: text, Type: domain.ChunkTypeText}}
	}

	docSummary := ""
	if summary != "" {
		docSummary = doc.Name + ": " + summary
	}
	for i := range chunks {
		chunks[i].Summary = docSummary
		chunks[i].Confidence = 1.0
	}

	return chunks
}

// chunkSlides produces one chunk per slide. The slide title leads the
// chunk text, matching the flat rendition, so a title-only slide still
// yields a chunk; only slides with neither title nor content are dropped.
func (c *Chunker) chunkSlides(structure *domain.Structure) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(structure.Sections))
	for _, section := range structure.Sections {
		lines := section.Content
		if section.Title != "" {
			lines = append([]string{section.Title}, section.Content...)
		}
		if len(lines) == 0 {
			continue
		}

		chunk := domain.Chunk{
			Text:    strings.Join(lines, "\n"),
			Section: fmt.Sprintf("Slide %d", section.Level),
			Type:    domain.ChunkTypeSlide,
		}
		if section.Title != "" {
			chunk.Subsection = section.Title
		}
		if section.HasNotes {
			chunk.Tags = append(chunk.Tags, "speaker_notes")
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// chunkSheets produces one chunk per sheet.
func (c *Chunker) chunkSheets(structure *domain.Structure) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(structure.Sections))
	for _, section := range structure.Sections {
		if section.IsEmpty() {
			continue
		}

		chunks = append(chunks, domain.Chunk{
			Text:    section.Text(),
			Section: "Sheet: " + section.Title,
			Type:    domain.ChunkTypeSpreadsheet,
		})
	}
	return chunks
}

// chunkProse performs structure-aware chunking for documents and PDFs.
// Each structural section becomes one chunk, or several overlapping
// chunks when it exceeds the window size. Documents without structural
// sections fall back to paragraph accumulation.
func (c *Chunker) chunkProse(text string, structure *domain.Structure) []domain.Chunk {
	if len(structure.Sections) == 0 {
		return c.chunkParagraphs(text)
	}

	var chunks []domain.Chunk
	for _, section := range structure.Sections {
		sectionText := section.Text()
		if strings.TrimSpace(sectionText) == "" {
			continue
		}

		chunkType := domain.ChunkTypeText
		var tags []string
		if section.Type == domain.SectionTable {
			chunkType = domain.ChunkTypeTable
			tags = []string{"table"}
		}

		if len(sectionText) <= c.chunkSize {
			chunks = append(chunks, domain.Chunk{
				Text:    sectionText,
				Section: section.Title,
				Type:    chunkType,
				Tags:    tags,
			})
			continue
		}

		for _, piece := range c.splitWithOverlap(sectionText) {
			chunks = append(chunks, domain.Chunk{
				Text:    piece,
				Section: section.Title,
				Type:    chunkType,
				Tags:    tags,
			})
		}
	}
	return chunks
}

// splitWithOverlap slides a window of chunkSize characters over the
// text. When the window's right edge falls inside the text, the cut
// point moves back to the last sentence boundary within the final 20%
// of the window, if one exists. The window start then advances by
// chunkSize-overlap so consecutive chunks share trailing context.
func (c *Chunker) splitWithOverlap(text string) []string {
	var pieces []string

	start := 0
	for {
		end := start + c.chunkSize
		if end >= len(text) {
			pieces = append(pieces, text[start:])
			break
		}

		cut := end
		if idx := strings.LastIndex(text[start:end], sentenceBoundary); idx >= c.chunkSize*4/5 {
			// Cut just after the terminator
			cut = start + idx + 1
		}

		pieces = append(pieces, text[start:cut])
		start += c.chunkSize - c.overlap
	}

	return pieces
}

// chunkParagraphs accumulates blank-line-delimited paragraphs up to the
// window size. The last paragraph of each chunk seeds the next one, so
// neighbouring chunks keep shared context even without structure.
func (c *Chunker) chunkParagraphs(text string) []domain.Chunk {
	paragraphs := strings.Split(text, "\n\n")

	var chunks []domain.Chunk
	var current []string
	size := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunkText := strings.TrimSpace(strings.Join(current, "\n\n"))
		if chunkText != "" {
			chunks = append(chunks, domain.Chunk{
				Text: chunkText,
				Type: domain.ChunkTypeText,
			})
		}
	}

	for _, para := range paragraphs {
		if size+len(para) > c.chunkSize && len(current) > 0 {
			flush()
			// Seed the next chunk with the trailing paragraph
			seed := current[len(current)-1]
			current = []string{seed, para}
			size = len(seed) + len(para)
			continue
		}
		current = append(current, para)
		size += len(para)
	}
	flush()

	return chunks
}
