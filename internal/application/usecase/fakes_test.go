package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

type fakeStatus struct{ stopped bool }

func (s *fakeStatus) Update(string) {}
func (s *fakeStatus) Stop()         { s.stopped = true }

type fakeTable struct {
	columns []string
	rows    [][]string
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }

func (t *fakeTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.rows = append(t.rows, row)
}

func (t *fakeTable) Render() string { return fmt.Sprint(t.rows) }

type fakeConsole struct {
	infos    []string
	warnings []string
	errors   []string
	success  []string
	statuses []*fakeStatus
	tables   []*fakeTable
}

func (c *fakeConsole) Print(...interface{})          {}
func (c *fakeConsole) Printf(string, ...interface{}) {}
func (c *fakeConsole) Println(...interface{})        {}

func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.success = append(c.success, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(string) types.StatusHandle {
	s := &fakeStatus{}
	c.statuses = append(c.statuses, s)
	return s
}

func (c *fakeConsole) CreateTable() types.TableInterface {
	t := &fakeTable{}
	c.tables = append(c.tables, t)
	return t
}

type dimensionCall struct {
	dimension  entity.Dimension
	start, end time.Time
}

type putCall struct {
	bucket, key, contentType string
	body                     []byte
}

type fakeAWSRepo struct {
	report    entity.CostReport
	reportErr error
	costCalls []entity.ReportConfig

	dimensionValues map[entity.Dimension][]entity.DimensionValue
	dimensionCalls  []dimensionCall
	tagValues       map[string][]string
	budgets         []entity.BudgetInfo
	listErr         error

	puts   []putCall
	putErr error
}

func (f *fakeAWSRepo) GetCostAndUsage(_ context.Context, _ string, cfg entity.ReportConfig) (entity.CostReport, error) {
	f.costCalls = append(f.costCalls, cfg)
	if f.reportErr != nil {
		return entity.CostReport{}, f.reportErr
	}
	r := f.report
	r.Config = cfg
	return r, nil
}

func (f *fakeAWSRepo) GetDimensionValues(_ context.Context, _ string, dim entity.Dimension, start, end time.Time) ([]entity.DimensionValue, error) {
	f.dimensionCalls = append(f.dimensionCalls, dimensionCall{dimension: dim, start: start, end: end})
	return f.dimensionValues[dim], f.listErr
}

func (f *fakeAWSRepo) GetTagValues(_ context.Context, _ string, key string, _, _ time.Time) ([]string, error) {
	return f.tagValues[key], f.listErr
}

func (f *fakeAWSRepo) GetAccountID(context.Context, string) (string, error) {
	return "123456789012", nil
}

func (f *fakeAWSRepo) GetBudgets(context.Context, string) ([]entity.BudgetInfo, error) {
	return f.budgets, f.listErr
}

func (f *fakeAWSRepo) PutObject(_ context.Context, _ string, bucket, key string, body []byte, contentType string) error {
	f.puts = append(f.puts, putCall{bucket: bucket, key: key, contentType: contentType, body: body})
	return f.putErr
}

type fakeExportRepo struct {
	written  map[string][]byte
	writeErr error
}

func (f *fakeExportRepo) RenderCSV(r entity.CostReport) ([]byte, error) {
	return []byte(fmt.Sprintf("csv:%d", len(r.Rows))), nil
}

func (f *fakeExportRepo) RenderJSON(r entity.CostReport) ([]byte, error) {
	return []byte(fmt.Sprintf("json:%d", len(r.Rows))), nil
}

func (f *fakeExportRepo) RenderPDF(r entity.CostReport) ([]byte, error) {
	return []byte(fmt.Sprintf("pdf:%d", len(r.Rows))), nil
}

func (f *fakeExportRepo) WriteFile(path string, data []byte) (string, error) {
	if f.writeErr != nil {
		return "", f.writeErr
	}
	if f.written == nil {
		f.written = map[string][]byte{}
	}
	f.written[path] = data
	return path, nil
}

type fakeConfigRepo struct {
	cfg *types.Config
	err error
}

func (f *fakeConfigRepo) LoadConfigFile(string) (*types.Config, error) { return f.cfg, f.err }

func fixedClock() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
}

func newTestUseCase(aws *fakeAWSRepo, export *fakeExportRepo) (*ReportUseCase, *fakeConsole) {
	console := &fakeConsole{}
	uc := NewReportUseCase(aws, export, &fakeConfigRepo{}, console)
	uc.builder.now = fixedClock
	return uc, console
}

func intPtr(n int) *int { return &n }

func decimalOf(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
