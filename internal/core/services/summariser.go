package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
	"github.com/halcyon-labs/docindexer/internal/logger"
)

// summarySampleLimit is the leading-character budget of document text
// sent to the LLM. Summarising the full text of large documents is
// wasteful and rarely improves the abstract.
const summarySampleLimit = 2500

// summaryMaxLength is the response budget passed to the LLM service.
const summaryMaxLength = 150

// Summariser produces one short abstract per document, shared by all of
// that document's chunks.
type Summariser struct {
	llm driven.LLMService
}

// NewSummariser creates a summariser backed by the given LLM service.
// The service may be nil, in which case every summary is empty.
func NewSummariser(llm driven.LLMService) *Summariser {
	return &Summariser{llm: llm}
}

// Summarise asks the LLM for a short abstract of the document via the
// provider's Summarise operation, which owns the prompt shaping. Any
// failure of the external call degrades to an empty summary rather
// than propagating: a missing summary weakens chunk enrichment but must
// never fail the document.
func (s *Summariser) Summarise(ctx context.Context, text, documentName string) string {
	if s.llm == nil || strings.TrimSpace(text) == "" {
		return ""
	}

	sample := text
	if len(sample) > summarySampleLimit {
		sample = sample[:summarySampleLimit]
	}

	content := fmt.Sprintf("Document: %s\n\n%s", documentName, sample)

	summary, err := s.llm.Summarise(ctx, content, summaryMaxLength)
	if err != nil {
		logger.Warn("Summary failed for %s: %v", documentName, err)
		return ""
	}

	return strings.TrimSpace(summary)
}
