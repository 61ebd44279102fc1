package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// unicodeFamily is the registered name of the embedded UTF-8 font.
const unicodeFamily = "unicode"

// PDFExporter renders datasets into a basic tabular PDF. The built-in PDF
// core fonts are Latin-only and cannot represent the Chinese subject, class
// and duty values that flow through schedules, so the exporter embeds a
// UTF-8 TTF font when one is present at fontPath.
type PDFExporter struct {
	fontPath string
}

// NewPDFExporter constructs a PDF exporter. fontPath names a TTF file to
// embed (a CJK-capable face such as Noto Sans SC); when the path is empty
// or the file is absent, rendering falls back to the Latin-only core fonts.
func NewPDFExporter(fontPath string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	family := e.registerFont(pdf)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont(family, "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont(family, "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// registerFont embeds the configured TTF for the regular and bold styles
// and returns the family name to render with. A missing font file degrades
// to the core fonts rather than failing the export.
func (e *PDFExporter) registerFont(pdf *gofpdf.Fpdf) string {
	if e.fontPath == "" {
		return "Arial"
	}
	if _, err := os.Stat(e.fontPath); err != nil {
		return "Arial"
	}
	pdf.AddUTF8Font(unicodeFamily, "", e.fontPath)
	pdf.AddUTF8Font(unicodeFamily, "B", e.fontPath)
	return unicodeFamily
}
