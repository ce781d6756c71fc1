package repository

import (
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// ExportRepository renders cost reports and writes them to local files.
type ExportRepository interface {
	RenderCSV(report entity.CostReport) ([]byte, error)
	RenderJSON(report entity.CostReport) ([]byte, error)
	RenderPDF(report entity.CostReport) ([]byte, error)

	WriteFile(path string, data []byte) (string, error)
}
