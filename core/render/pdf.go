// Package render — PDF renderer.
// Lays out the Markdown report with gofpdf: headings get variable font
// sizes, the metrics table becomes two aligned columns, and the analyzed
// text block is set in a monospace font.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/jung-kurt/gofpdf"
)

var (
	tableSeparatorRegex = regexp.MustCompile(`^\|[-:| ]+\|$`)
	inlineCodeRegex     = regexp.MustCompile("`([^`]+)`")
)

// PDFRenderer renders the report as a PDF document.
type PDFRenderer struct {
	markdown *MarkdownRenderer
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(includeText bool) *PDFRenderer {
	return &PDFRenderer{markdown: NewMarkdownRenderer(includeText)}
}

// Render converts the report into PDF bytes.
func (r *PDFRenderer) Render(report *core.Report) ([]byte, error) {
	md, err := r.markdown.Render(report)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// The core fonts are cp1252; translate so accented text survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	inCodeBlock := false
	for _, line := range strings.Split(string(md), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		switch {
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr(strings.TrimSpace(trimmed[level:])), level)
		case tableSeparatorRegex.MatchString(trimmed):
			// Header underline; nothing to draw.
		case strings.HasPrefix(trimmed, "|"):
			renderTableRow(pdf, tr, trimmed)
		case strings.HasPrefix(trimmed, "- "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInline(trimmed[2:])), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInline(trimmed)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 14, 3: 12}
	size, ok := sizes[level]
	if !ok {
		size = 11
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// renderTableRow draws a "| label | value |" row as two cells.
func renderTableRow(pdf *gofpdf.Fpdf, tr func(string) string, row string) {
	cells := strings.Split(strings.Trim(row, "|"), "|")
	pdf.SetFont("Helvetica", "", 10)
	for i, cell := range cells {
		width := 60.0
		if i > 0 {
			width = 40
		}
		pdf.CellFormat(width, 6, tr(strings.TrimSpace(cell)), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

// cleanInline strips inline code markers for PDF rendering.
func cleanInline(text string) string {
	return strings.TrimSpace(inlineCodeRegex.ReplaceAllString(text, "$1"))
}
