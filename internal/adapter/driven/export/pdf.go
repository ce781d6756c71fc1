package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 277.0 // A4 paisagem menos margens de 10mm
	pdfRowHeight  = 6.0
	pdfBottomEdge = 195.0
)

func (r *ExportRepositoryImpl) RenderPDF(report entity.CostReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	stripeColor := [3]int{240, 240, 240}

	header := csvHeader(report.Config)
	widths := pdfColumnWidths(len(report.Config.GroupBy), len(report.Config.Metrics))

	drawHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		for i, h := range header {
			pdf.CellFormat(widths[i], pdfRowHeight+1, tr(fitText(pdf, h, widths[i])), "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "AWS Cost Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 100, 100)
	cfg := report.Config
	subtitle := fmt.Sprintf("%s | %s | %d periods, %d rows", cfg.Period(), strings.ToLower(string(cfg.Granularity)), report.Periods, len(report.Rows))
	pdf.CellFormat(0, 6, tr(subtitle), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	drawHeader()
	for i, row := range report.Rows {
		if pdf.GetY()+pdfRowHeight > pdfBottomEdge {
			pdf.AddPage()
			drawHeader()
		}
		fill := i%2 == 1
		pdf.SetFillColor(stripeColor[0], stripeColor[1], stripeColor[2])
		record := csvRecord(row, cfg)
		for j, cell := range record {
			align := "L"
			if j >= 2+len(cfg.GroupBy) {
				align = "R"
			}
			pdf.CellFormat(widths[j], pdfRowHeight, tr(fitText(pdf, cell, widths[j])), "", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfColumnWidths dá 24mm a cada coluna de data e divide o restante, com colunas de
// grupo recebendo o dobro de uma coluna de métrica.
func pdfColumnWidths(groups, metrics int) []float64 {
	const dateWidth = 24.0
	widths := []float64{dateWidth, dateWidth}

	shares := float64(groups*2 + metrics)
	unit := 0.0
	if shares > 0 {
		unit = (pdfPageWidth - 2*dateWidth) / shares
	}
	for i := 0; i < groups; i++ {
		widths = append(widths, unit*2)
	}
	for i := 0; i < metrics; i++ {
		widths = append(widths, unit)
	}
	return widths
}

func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
