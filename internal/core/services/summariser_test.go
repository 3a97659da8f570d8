package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummariser(t *testing.T) {
	llm := &mockLLM{response: "  A short abstract.  "}
	s := NewSummariser(llm)

	got := s.Summarise(context.Background(), "Document body text.", "report.docx")

	assert.Equal(t, "A short abstract.", got)
	require.Len(t, llm.summarised, 1, "the provider's Summarise operation owns the prompt shaping")
	assert.Empty(t, llm.prompts)
	assert.Contains(t, llm.summarised[0], "report.docx")
	assert.Contains(t, llm.summarised[0], "Document body text.")
	assert.Equal(t, []int{summaryMaxLength}, llm.maxLengths)
}

func TestSummariser_NilService(t *testing.T) {
	s := NewSummariser(nil)
	assert.Empty(t, s.Summarise(context.Background(), "text", "doc.docx"))
}

func TestSummariser_EmptyText(t *testing.T) {
	llm := &mockLLM{response: "should not be called"}
	s := NewSummariser(llm)

	assert.Empty(t, s.Summarise(context.Background(), "   ", "doc.docx"))
	assert.Empty(t, llm.summarised)
}

func TestSummariser_ErrorDegradesToEmpty(t *testing.T) {
	llm := &mockLLM{err: errors.New("model overloaded")}
	s := NewSummariser(llm)

	assert.Empty(t, s.Summarise(context.Background(), "text", "doc.docx"))
}

func TestSummariser_SamplesLargeDocuments(t *testing.T) {
	llm := &mockLLM{response: "abstract"}
	s := NewSummariser(llm)

	s.Summarise(context.Background(), strings.Repeat("a", summarySampleLimit*2), "big.docx")

	require.Len(t, llm.summarised, 1)
	assert.NotContains(t, llm.summarised[0], strings.Repeat("a", summarySampleLimit+1))
	assert.Contains(t, llm.summarised[0], strings.Repeat("a", summarySampleLimit))
}
