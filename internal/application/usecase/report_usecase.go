package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

const s3Scheme = "s3://"

// reportFormats mapeia cada tipo de relatório ao seu content type.
var reportFormats = map[string]string{
	"csv":  "text/csv",
	"json": "application/json",
	"pdf":  "application/pdf",
}

// ReportUseCase gera o relatório de custos e as listagens auxiliares.
type ReportUseCase struct {
	awsRepo    repository.AWSRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	builder    *ConfigBuilder
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		awsRepo:    awsRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		builder:    NewConfigBuilder(),
	}
}

// LoadConfigFile carrega o arquivo de configuração informado em --config-file.
func (uc *ReportUseCase) LoadConfigFile(filePath string) (*types.Config, error) {
	return uc.configRepo.LoadConfigFile(filePath)
}

// RunReport executa o fluxo completo: monta a configuração, consulta o Cost Explorer e exporta.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.builder.Build(args)
	if err != nil {
		return err
	}

	reportTypes, err := normalizeReportTypes(args.ReportType)
	if err != nil {
		return err
	}

	output := strings.TrimSpace(args.Output)
	if output == "" {
		return types.NewConfigurationError("--output", "must not be empty")
	}
	if strings.HasPrefix(output, s3Scheme) {
		if _, _, err := parseS3URI(output); err != nil {
			return err
		}
	}

	uc.console.LogInfo("Generating %s cost report for %s", strings.ToLower(string(cfg.Granularity)), cfg.Period())

	status := uc.console.Status("Querying AWS Cost Explorer...")
	report, err := uc.awsRepo.GetCostAndUsage(ctx, args.Profile, cfg)
	status.Stop()
	if err != nil {
		return fmt.Errorf("error generating report: %w", err)
	}

	multi := len(reportTypes) > 1
	for _, reportType := range reportTypes {
		dest := outputPath(output, reportType, multi)
		saved, err := uc.export(ctx, args.Profile, report, reportType, dest)
		if err != nil {
			return err
		}
		uc.console.LogSuccess("Report saved to: %s", saved)
	}

	uc.console.LogInfo("Summary: %d time periods, %d data points", report.Periods, len(report.Rows))
	return nil
}

func (uc *ReportUseCase) export(ctx context.Context, profile string, report entity.CostReport, reportType, dest string) (string, error) {
	var (
		data []byte
		err  error
	)
	switch reportType {
	case "csv":
		data, err = uc.exportRepo.RenderCSV(report)
	case "json":
		data, err = uc.exportRepo.RenderJSON(report)
	case "pdf":
		data, err = uc.exportRepo.RenderPDF(report)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", reportType, err)
	}

	if strings.HasPrefix(dest, s3Scheme) {
		bucket, key, err := parseS3URI(dest)
		if err != nil {
			return "", err
		}
		if err := uc.awsRepo.PutObject(ctx, profile, bucket, key, data, reportFormats[reportType]); err != nil {
			return "", err
		}
		return dest, nil
	}

	return uc.exportRepo.WriteFile(dest, data)
}

func normalizeReportTypes(requested []string) ([]string, error) {
	var out []string
	for _, t := range requested {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := reportFormats[t]; !ok {
			return nil, types.NewConfigurationError("--report-type", "unsupported report type %q (use csv, json or pdf)", t)
		}
		out = appendUnique(out, t)
	}
	if len(out) == 0 {
		return []string{"csv"}, nil
	}
	return out, nil
}

// outputPath keeps the user's path for a single report type unless its extension
// names another report format. With several types each one gets its own extension.
func outputPath(base, reportType string, multi bool) string {
	ext := path.Ext(base)
	if strings.EqualFold(ext, "."+reportType) {
		return base
	}
	_, known := reportFormats[strings.ToLower(strings.TrimPrefix(ext, "."))]
	switch {
	case known:
		return strings.TrimSuffix(base, ext) + "." + reportType
	case multi:
		return base + "." + reportType
	default:
		return base
	}
}

func parseS3URI(uri string) (string, string, error) {
	rest := strings.TrimPrefix(uri, s3Scheme)
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", types.NewConfigurationError("--output", "invalid S3 location %q (expected s3://bucket/key)", uri)
	}
	return bucket, key, nil
}
