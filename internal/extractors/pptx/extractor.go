// Package pptx extracts text and structure from PowerPoint decks.
package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Extractor handles PPTX presentations.
type Extractor struct{}

// New creates a new PPTX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kind returns the document format this extractor handles.
func (e *Extractor) Kind() domain.Kind {
	return domain.KindPresentation
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.MIMEPresentation}
}

// Extract reads slides in numeric order. Each slide becomes a section
// whose level records the slide number, with the title shape's text as
// the section title and remaining shapes as content in shape order.
// Speaker notes are appended as an "[Speaker Notes: ...]" line and set
// HasNotes on the section. The flat text carries "Slide {n}:" markers.
func (e *Extractor) Extract(_ context.Context, content []byte) (string, *domain.Structure, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, fmt.Errorf("%w: not a zip archive", domain.ErrExtractionFailed)
	}

	numbers := slideNumbers(reader)
	structure := &domain.Structure{Kind: domain.KindPresentation}
	var lines []string

	for _, n := range numbers {
		raw, err := readArchiveFile(reader, fmt.Sprintf("ppt/slides/slide%d.xml", n))
		if err != nil {
			return "", nil, err
		}
		if raw == nil {
			continue
		}

		var slide slideXML
		if err := xml.Unmarshal(raw, &slide); err != nil {
			return "", nil, fmt.Errorf("%w: slide %d: %w", domain.ErrExtractionFailed, n, err)
		}

		title, body := slide.content()
		notes, err := slideNotes(reader, n)
		if err != nil {
			return "", nil, err
		}

		section := domain.Section{
			Title:    title,
			Level:    n,
			Type:     domain.SectionSlide,
			Content:  body,
			HasNotes: notes != "",
		}
		if notes != "" {
			section.Content = append(section.Content, "[Speaker Notes: "+notes+"]")
		}
		structure.Sections = append(structure.Sections, section)

		lines = append(lines, fmt.Sprintf("Slide %d:", n))
		if title != "" {
			lines = append(lines, title)
		}
		lines = append(lines, section.Content...)
	}

	return strings.Join(lines, "\n"), structure, nil
}

// slideXML mirrors ppt/slides/slideN.xml. Shapes appear under the
// slide's shape tree; tables ride in graphic frames.
type slideXML struct {
	CSld struct {
		SpTree struct {
			Shapes []shape        `xml:"sp"`
			Frames []graphicFrame `xml:"graphicFrame"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

type shape struct {
	NvSpPr struct {
		NvPr struct {
			Placeholder struct {
				Type string `xml:"type,attr"`
			} `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	TxBody struct {
		Paragraphs []slidePara `xml:"p"`
	} `xml:"txBody"`
}

type slidePara struct {
	Runs []struct {
		Text string `xml:"t"`
	} `xml:"r"`
}

type graphicFrame struct {
	Graphic struct {
		Data struct {
			Table struct {
				Rows []struct {
					Cells []struct {
						TxBody struct {
							Paragraphs []slidePara `xml:"p"`
						} `xml:"txBody"`
					} `xml:"tc"`
				} `xml:"tr"`
			} `xml:"tbl"`
		} `xml:"graphicData"`
	} `xml:"graphic"`
}

// notesXML mirrors ppt/notesSlides/notesSlideN.xml.
type notesXML struct {
	CSld struct {
		SpTree struct {
			Shapes []shape `xml:"sp"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

// content splits the slide into its title and body lines. The first
// title or centred-title placeholder wins; everything else keeps shape
// order, with table rows pipe-joined.
func (s slideXML) content() (string, []string) {
	var title string
	var body []string

	for _, sp := range s.CSld.SpTree.Shapes {
		text := sp.text()
		if text == "" {
			continue
		}
		phType := sp.NvSpPr.NvPr.Placeholder.Type
		if title == "" && (phType == "title" || phType == "ctrTitle") {
			title = text
			continue
		}
		body = append(body, text)
	}

	for _, frame := range s.CSld.SpTree.Frames {
		for _, row := range frame.Graphic.Data.Table.Rows {
			var cells []string
			for _, c := range row.Cells {
				var parts []string
				for _, p := range c.TxBody.Paragraphs {
					if t := p.text(); t != "" {
						parts = append(parts, t)
					}
				}
				if cellText := strings.Join(parts, " "); cellText != "" {
					cells = append(cells, cellText)
				}
			}
			if len(cells) > 0 {
				body = append(body, strings.Join(cells, " | "))
			}
		}
	}

	return title, body
}

// text joins the shape's paragraphs with newlines.
func (s shape) text() string {
	var paras []string
	for _, p := range s.TxBody.Paragraphs {
		if t := p.text(); t != "" {
			paras = append(paras, t)
		}
	}
	return strings.Join(paras, "\n")
}

func (p slidePara) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return strings.TrimSpace(b.String())
}

// slideNumbers lists the deck's slide numbers in ascending order. The
// archive does not guarantee entry order, so sort numerically.
func slideNumbers(reader *zip.Reader) []int {
	var numbers []int
	for _, file := range reader.File {
		match := slidePattern.FindStringSubmatch(file.Name)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// slideNotes returns the speaker notes for a slide, or "" when the
// deck has none. Placeholder text like slide-number fields is dropped
// by skipping shapes whose placeholder is not the notes body.
func slideNotes(reader *zip.Reader, n int) (string, error) {
	raw, err := readArchiveFile(reader, fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n))
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", nil
	}

	var notes notesXML
	if err := xml.Unmarshal(raw, &notes); err != nil {
		return "", fmt.Errorf("%w: notes for slide %d: %w", domain.ErrExtractionFailed, n, err)
	}

	var parts []string
	for _, sp := range notes.CSld.SpTree.Shapes {
		if phType := sp.NvSpPr.NvPr.Placeholder.Type; phType != "" && phType != "body" {
			continue
		}
		if text := sp.text(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

// readArchiveFile returns the named file's bytes, or nil when absent.
func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %w", domain.ErrExtractionFailed, name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", domain.ErrExtractionFailed, name, err)
		}
		return data, nil
	}
	return nil, nil
}
