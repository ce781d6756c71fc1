package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// csvHeader is StartDate, EndDate, one column per group key, then one per metric.
func csvHeader(cfg entity.ReportConfig) []string {
	header := make([]string, 0, 2+len(cfg.GroupBy)+len(cfg.Metrics))
	header = append(header, "StartDate", "EndDate")
	for _, g := range cfg.GroupBy {
		header = append(header, g.Column())
	}
	header = append(header, cfg.Metrics...)
	return header
}

func csvRecord(row entity.CostRow, cfg entity.ReportConfig) []string {
	record := make([]string, 0, 2+len(cfg.GroupBy)+len(cfg.Metrics))
	record = append(record, row.PeriodStart, row.PeriodEnd)
	for i := range cfg.GroupBy {
		value := ""
		if i < len(row.GroupValues) {
			value = row.GroupValues[i]
		}
		record = append(record, value)
	}
	for _, m := range cfg.Metrics {
		value := ""
		if mv, ok := row.Metrics[m]; ok {
			value = mv.Amount.String()
		}
		record = append(record, value)
	}
	return record
}

// RenderCSV renders the whole report in memory so a failure never leaves a partial file.
func (r *ExportRepositoryImpl) RenderCSV(report entity.CostReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader(report.Config)); err != nil {
		return nil, fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range report.Rows {
		if err := writer.Write(csvRecord(row, report.Config)); err != nil {
			return nil, fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV data: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *ExportRepositoryImpl) RenderJSON(report entity.CostReport) ([]byte, error) {
	rows := report.Rows
	if rows == nil {
		rows = []entity.CostRow{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding JSON data: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile replaces path with data via a temp file in the same directory, so the
// destination holds either the previous content or the complete report.
func (r *ExportRepositoryImpl) WriteFile(path string, data []byte) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", &types.OutputError{Path: path, Err: err}
	}

	dir := filepath.Dir(absPath)
	info, err := os.Stat(dir)
	if err != nil {
		return "", &types.OutputError{Path: absPath, Err: err}
	}
	if !info.IsDir() {
		return "", &types.OutputError{Path: absPath, Err: fmt.Errorf("%s is not a directory", dir)}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return "", &types.OutputError{Path: absPath, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return "", &types.OutputError{Path: absPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", &types.OutputError{Path: absPath, Err: err}
	}
	if err := os.Chmod(tmpName, reportFileMode(absPath)); err != nil {
		cleanup()
		return "", &types.OutputError{Path: absPath, Err: err}
	}
	if err := os.Rename(tmpName, absPath); err != nil {
		cleanup()
		return "", &types.OutputError{Path: absPath, Err: err}
	}

	return absPath, nil
}

// reportFileMode mantém as permissões de um relatório existente; arquivos novos usam 0644.
func reportFileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0644
}
