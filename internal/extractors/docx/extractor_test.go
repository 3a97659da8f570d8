package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(documentXML string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	if documentXML != "" {
		doc, _ := w.Create("word/document.xml")
		doc.Write([]byte(documentXML))
	}

	w.Close()
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.Equal(t, domain.KindWord, extractor.Kind())
}

func TestSupportedMIMETypes(t *testing.T) {
	extractor := New()
	mimeTypes := extractor.SupportedMIMETypes()

	require.Len(t, mimeTypes, 1)
	assert.Contains(t, mimeTypes, domain.MIMEWord)
}

func TestExtract_InvalidZip(t *testing.T) {
	extractor := New()

	_, _, err := extractor.Extract(context.Background(), []byte("not a zip file"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_Headings(t *testing.T) {
	extractor := New()

	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Introduction</w:t></w:r></w:p>
<w:p><w:r><w:t>Opening paragraph.</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Background</w:t></w:r></w:p>
<w:p><w:r><w:t>Some detail.</w:t></w:r></w:p>
</w:body>
</w:document>`

	text, structure, err := extractor.Extract(context.Background(), createTestDOCX(docXML))
	require.NoError(t, err)
	require.NotNil(t, structure)

	assert.Equal(t, domain.KindWord, structure.Kind)
	require.Len(t, structure.Sections, 2)

	assert.Equal(t, "Introduction", structure.Sections[0].Title)
	assert.Equal(t, 1, structure.Sections[0].Level)
	assert.Equal(t, []string{"Opening paragraph."}, structure.Sections[0].Content)

	assert.Equal(t, "Background", structure.Sections[1].Title)
	assert.Equal(t, 2, structure.Sections[1].Level)

	// Headings are rendered as markdown lines in the flat text.
	assert.Contains(t, text, "# Introduction")
	assert.Contains(t, text, "## Background")
	assert.Contains(t, text, "Some detail.")
}

func TestExtract_NoHeadings(t *testing.T) {
	extractor := New()

	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
<w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>
</w:body>
</w:document>`

	text, structure, err := extractor.Extract(context.Background(), createTestDOCX(docXML))
	require.NoError(t, err)

	// Untitled leading content still forms a section.
	require.Len(t, structure.Sections, 1)
	assert.Empty(t, structure.Sections[0].Title)
	assert.Len(t, structure.Sections[0].Content, 2)

	assert.Equal(t, "First paragraph\nSecond paragraph", text)
}

func TestExtract_MultipleRuns(t *testing.T) {
	extractor := New()

	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>World</w:t></w:r></w:p>
</w:body>
</w:document>`

	text, _, err := extractor.Extract(context.Background(), createTestDOCX(docXML))
	require.NoError(t, err)
	assert.Equal(t, "Hello World", text)
}

func TestExtract_Table(t *testing.T) {
	extractor := New()

	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Before the table.</w:t></w:r></w:p>
<w:tbl>
<w:tr><w:tc><w:p><w:r><w:t>Name</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Value</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:p><w:r><w:t>alpha</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>1</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
</w:body>
</w:document>`

	text, structure, err := extractor.Extract(context.Background(), createTestDOCX(docXML))
	require.NoError(t, err)

	require.Len(t, structure.Sections, 2)
	tableSection := structure.Sections[1]
	assert.Equal(t, domain.SectionTable, tableSection.Type)
	assert.Equal(t, []string{"Name | Value", "alpha | 1"}, tableSection.Content)

	assert.Contains(t, text, "Name | Value")
	assert.Contains(t, text, "alpha | 1")
}

func TestExtract_EmptyDocument(t *testing.T) {
	extractor := New()

	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body></w:body>
</w:document>`

	text, structure, err := extractor.Extract(context.Background(), createTestDOCX(docXML))
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Empty(t, structure.Sections)
}

func TestExtract_MissingDocumentXML(t *testing.T) {
	extractor := New()

	text, structure, err := extractor.Extract(context.Background(), createTestDOCX(""))
	require.NoError(t, err)
	assert.Empty(t, text)
	require.NotNil(t, structure)
	assert.Empty(t, structure.Sections)
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"Heading3", 3},
		{"Title", 1},
		{"Normal", 0},
		{"", 0},
	}

	for _, tt := range tests {
		p := paragraph{}
		p.Props.Style.Val = tt.style
		assert.Equal(t, tt.want, p.headingLevel(), "style %q", tt.style)
	}
}
