package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 277.0 // A4 landscape minus margins
	pdfLineHeight = 5.0
)

// PDFExporter renders tables into a landscape A4 document with wrapped cells.
type PDFExporter struct {
	footer string
}

func NewPDFExporter(footer string) *PDFExporter {
	return &PDFExporter{footer: footer}
}

func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) Extension() string { return "pdf" }

func (e *PDFExporter) Render(table Table) ([]byte, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if e.footer != "" {
		pdf.SetFooterFunc(func() {
			pdf.SetY(-12)
			pdf.SetFont("Arial", "I", 8)
			pdf.CellFormat(0, 8, fmt.Sprintf("%s - page %d", tr(e.footer), pdf.PageNo()), "", 0, "C", false, 0, "")
		})
	}
	pdf.AddPage()

	if table.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(table.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	widths := columnWidths(table.Columns)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range table.Columns {
		pdf.CellFormat(widths[i], 8, tr(col.Header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range table.Rows {
		lines := make([][][]byte, len(table.Columns))
		rowLines := 1
		for i, col := range table.Columns {
			lines[i] = pdf.SplitLines([]byte(tr(row[col.Key])), widths[i]-2)
			if len(lines[i]) > rowLines {
				rowLines = len(lines[i])
			}
		}
		height := float64(rowLines) * pdfLineHeight

		_, pageHeight := pdf.GetPageSize()
		_, _, _, bottom := pdf.GetMargins()
		if pdf.GetY()+height > pageHeight-bottom {
			pdf.AddPage()
		}

		x, y := pdf.GetXY()
		for i := range table.Columns {
			pdf.Rect(x, y, widths[i], height, "D")
			for n, line := range lines[i] {
				pdf.SetXY(x+1, y+float64(n)*pdfLineHeight)
				pdf.CellFormat(widths[i]-2, pdfLineHeight, string(line), "", 0, "L", false, 0, "")
			}
			x += widths[i]
		}
		pdf.SetXY(10, y+height)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(cols []Column) []float64 {
	total := 0.0
	for _, col := range cols {
		total += weight(col)
	}
	widths := make([]float64, len(cols))
	for i, col := range cols {
		widths[i] = pdfPageWidth * weight(col) / total
	}
	return widths
}

func weight(col Column) float64 {
	if col.Width <= 0 {
		return 1
	}
	return col.Width
}
