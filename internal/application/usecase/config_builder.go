package usecase

import (
	"strings"
	"time"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// inputDateLayouts são os formatos aceitos em --date-range.
var inputDateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006"}

// ConfigBuilder converte os argumentos da CLI em um ReportConfig validado.
type ConfigBuilder struct {
	now func() time.Time
}

// NewConfigBuilder cria um ConfigBuilder usando o relógio do sistema.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{now: time.Now}
}

// Build valida os argumentos e monta o ReportConfig. Toda falha é um *types.ConfigurationError.
func (b *ConfigBuilder) Build(args *types.CLIArgs) (entity.ReportConfig, error) {
	var cfg entity.ReportConfig

	start, end, err := b.timeRange(args)
	if err != nil {
		return cfg, err
	}
	cfg.StartDate, cfg.EndDate = start, end

	cfg.LinkedAccountIDs = ParseAccountIDs(args.Account, args.Accounts)

	cfg.Filters, cfg.TagFilters, err = ParseFilters(args.Filters)
	if err != nil {
		return cfg, err
	}
	// Contas vindas de --filters entram no mesmo predicado de --account/--accounts.
	if ids, ok := cfg.Filters[entity.DimensionLinkedAccount]; ok {
		cfg.LinkedAccountIDs = appendUnique(cfg.LinkedAccountIDs, ids...)
		delete(cfg.Filters, entity.DimensionLinkedAccount)
	}
	if service := strings.TrimSpace(args.Service); service != "" {
		cfg.Filters[entity.DimensionService] = []string{entity.NormalizeServiceName(service)}
	}

	cfg.Granularity, err = entity.ParseGranularity(args.Granularity)
	if err != nil {
		return cfg, err
	}

	cfg.GroupBy, err = ParseGroupBy(args.GroupBy)
	if err != nil {
		return cfg, err
	}

	cfg.Metrics, err = resolveMetrics(args.Metrics)
	if err != nil {
		return cfg, err
	}

	if err := cfg.Validate(b.now()); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (b *ConfigBuilder) timeRange(args *types.CLIArgs) (time.Time, time.Time, error) {
	hasDays := args.Days != nil
	hasRange := len(args.DateRange) > 0

	switch {
	case hasDays && hasRange:
		return time.Time{}, time.Time{}, types.NewConfigurationError("--days", "cannot be combined with --date-range")
	case !hasDays && !hasRange:
		return time.Time{}, time.Time{}, types.NewConfigurationError("--days", "either --days or --date-range is required")
	case hasDays:
		if *args.Days <= 0 {
			return time.Time{}, time.Time{}, types.NewConfigurationError("--days", "must be greater than zero, got %d", *args.Days)
		}
		now := b.now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return today.AddDate(0, 0, -*args.Days), today, nil
	}

	if len(args.DateRange) != 2 {
		return time.Time{}, time.Time{}, types.NewConfigurationError("--date-range", "expected START,END but got %d value(s)", len(args.DateRange))
	}
	start, err := parseInputDate(args.DateRange[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseInputDate(args.DateRange[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseInputDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, types.NewConfigurationError("--date-range", "invalid date %q (use YYYY-MM-DD, YYYY/MM/DD or MM/DD/YYYY)", s)
}

func resolveMetrics(requested []string) ([]string, error) {
	var metrics []string
	for _, name := range requested {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		metric, ok := entity.LookupMetric(name)
		if !ok {
			return nil, types.NewConfigurationError("--metrics", "unknown metric %q (available: %s)",
				name, strings.Join(entity.KnownMetrics(), ", "))
		}
		metrics = appendUnique(metrics, metric)
	}
	if len(metrics) == 0 {
		return append([]string(nil), entity.DefaultMetrics...), nil
	}
	return metrics, nil
}
