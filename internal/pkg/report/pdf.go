// Package report renders college prediction reports as PDF documents.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Line is one "label: value" entry in the student section
type Line struct {
	Label string
	Value string
}

// Document is the content of a rendered report
type Document struct {
	Title   string
	Details []Line
	// Items are printed as a numbered list under the results heading
	Items []string
}

const (
	ResultsHeading = "Predicted Colleges:"
	DetailsHeading = "Student Details:"
	EmptyResults   = "No colleges matched the given criteria."
)

// Render lays out doc on A4 pages and returns the PDF bytes
func Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accented names survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(doc.Details) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, DetailsHeading, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		for _, d := range doc.Details {
			pdf.MultiCell(0, 7, tr(fmt.Sprintf("%s: %s", d.Label, d.Value)), "", "L", false)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, ResultsHeading, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	if len(doc.Items) == 0 {
		pdf.MultiCell(0, 7, EmptyResults, "", "L", false)
	}
	for i, item := range doc.Items {
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, item)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
