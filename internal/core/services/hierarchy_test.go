package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

func TestBuildHierarchy(t *testing.T) {
	docs := []domain.DocumentInfo{
		{Name: "a.docx", Path: "Reports"},
		{Name: "b.docx", Path: "Reports"},
		{Name: "c.pdf"},
		{Name: "d.xlsx", Path: "Reports/2024"},
	}

	h := BuildHierarchy(docs)

	assert.Equal(t, []string{"a.docx", "b.docx"}, h["Reports"])
	assert.Equal(t, []string{"c.pdf"}, h[domain.RootFolder])
	assert.Equal(t, []string{"d.xlsx"}, h["Reports/2024"])
}

func TestHierarchy_Siblings(t *testing.T) {
	h := Hierarchy{
		"Reports": {"a.docx", "b.docx", "c.docx", "d.docx", "e.docx"},
	}

	t.Run("excludes self", func(t *testing.T) {
		siblings := h.Siblings("Reports", "b.docx", 10)
		assert.Equal(t, []string{"a.docx", "c.docx", "d.docx", "e.docx"}, siblings)
	})

	t.Run("respects limit", func(t *testing.T) {
		siblings := h.Siblings("Reports", "a.docx", 3)
		assert.Equal(t, []string{"b.docx", "c.docx", "d.docx"}, siblings)
	})

	t.Run("unknown folder", func(t *testing.T) {
		assert.Nil(t, h.Siblings("Archive", "a.docx", 3))
	})

	t.Run("zero limit", func(t *testing.T) {
		assert.Nil(t, h.Siblings("Reports", "a.docx", 0))
	})
}
