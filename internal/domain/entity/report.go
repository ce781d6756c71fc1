package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// DateLayout é o formato de data usado pelo Cost Explorer.
const DateLayout = "2006-01-02"

// MaxGroupKeys é o número de agrupamentos aceitos por consulta.
const MaxGroupKeys = 2

// HourlyLayout é o formato exigido por Cost Explorer em consultas HOURLY.
const HourlyLayout = "2006-01-02T15:04:05Z"

// MaxHourlyDays é quantos dias para trás Cost Explorer guarda dados HOURLY.
const MaxHourlyDays = 14

// Granularity é o tamanho de cada período nos dados de custo.
type Granularity string

const (
	GranularityDaily   Granularity = "DAILY"
	GranularityMonthly Granularity = "MONTHLY"
	GranularityHourly  Granularity = "HOURLY"
)

// ParseGranularity aceita daily, monthly ou hourly, sem diferenciar maiúsculas.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToUpper(strings.TrimSpace(s))); g {
	case GranularityDaily, GranularityMonthly, GranularityHourly:
		return g, nil
	case "":
		return GranularityMonthly, nil
	default:
		return "", types.NewConfigurationError("--granularity", "unknown granularity %q (expected daily, monthly or hourly)", s)
	}
}

// GroupKeyType indica se a chave de agrupamento é uma dimensão ou uma tag.
type GroupKeyType string

const (
	GroupKeyDimension GroupKeyType = "DIMENSION"
	GroupKeyTag       GroupKeyType = "TAG"
)

// GroupKey é uma entrada da lista de agrupamento.
type GroupKey struct {
	Type GroupKeyType `json:"type"`
	Key  string       `json:"key"`
}

// Column retorna o nome da coluna no CSV.
func (g GroupKey) Column() string {
	return g.Key
}

func (g GroupKey) String() string {
	if g.Type == GroupKeyTag {
		return "tag:" + g.Key
	}
	return g.Key
}

// DefaultMetrics são usadas quando nenhuma métrica é informada.
var DefaultMetrics = []string{"BlendedCost", "UnblendedCost"}

var knownMetrics = []string{
	"AmortizedCost",
	"BlendedCost",
	"NetAmortizedCost",
	"NetUnblendedCost",
	"NormalizedUsageAmount",
	"UnblendedCost",
	"UsageQuantity",
}

// LookupMetric resolve o nome de uma métrica para sua grafia canônica.
func LookupMetric(name string) (string, bool) {
	for _, m := range knownMetrics {
		if strings.EqualFold(m, strings.TrimSpace(name)) {
			return m, true
		}
	}
	return "", false
}

// KnownMetrics lista as métricas aceitas pelo Cost Explorer.
func KnownMetrics() []string {
	out := make([]string, len(knownMetrics))
	copy(out, knownMetrics)
	return out
}

// ReportConfig descreve, já normalizada, uma consulta de custos.
// EndDate é exclusivo.
type ReportConfig struct {
	StartDate        time.Time              `json:"start_date"`
	EndDate          time.Time              `json:"end_date"`
	LinkedAccountIDs []string               `json:"linked_account_ids,omitempty"`
	Granularity      Granularity            `json:"granularity"`
	GroupBy          []GroupKey             `json:"group_by,omitempty"`
	Filters          map[Dimension][]string `json:"filters,omitempty"`
	TagFilters       map[string][]string    `json:"tag_filters,omitempty"`
	Metrics          []string               `json:"metrics"`
}

// Validate rejeita configurações que Cost Explorer recusaria remotamente.
// now define a janela de 14 dias aceita em HOURLY.
func (c ReportConfig) Validate(now time.Time) error {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return types.NewConfigurationError("time range", "start and end dates are required")
	}
	if !c.StartDate.Before(c.EndDate) {
		return types.NewConfigurationError("time range", "start date %s must be before end date %s",
			c.StartDate.Format(DateLayout), c.EndDate.Format(DateLayout))
	}

	switch c.Granularity {
	case GranularityDaily, GranularityMonthly:
	case GranularityHourly:
		utc := now.UTC()
		oldest := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -MaxHourlyDays)
		if c.StartDate.Before(oldest) {
			return types.NewConfigurationError("--granularity", "hourly data is limited to the last %d days (since %s), got %s to %s",
				MaxHourlyDays, oldest.Format(DateLayout), c.StartDate.Format(DateLayout), c.EndDate.Format(DateLayout))
		}
	default:
		return types.NewConfigurationError("--granularity", "unknown granularity %q", c.Granularity)
	}

	if len(c.GroupBy) > MaxGroupKeys {
		return types.NewConfigurationError("--group-by", "at most %d group keys are allowed, got %d", MaxGroupKeys, len(c.GroupBy))
	}
	seen := make(map[GroupKey]bool, len(c.GroupBy))
	for _, g := range c.GroupBy {
		if seen[g] {
			return types.NewConfigurationError("--group-by", "duplicate group key %s", g)
		}
		seen[g] = true
	}

	if len(c.Metrics) == 0 {
		return types.NewConfigurationError("--metrics", "at least one metric is required")
	}
	for _, m := range c.Metrics {
		if _, ok := LookupMetric(m); !ok {
			return types.NewConfigurationError("--metrics", "unknown metric %q (available: %s)", m, strings.Join(knownMetrics, ", "))
		}
	}

	return nil
}

// Period formata o intervalo configurado para os logs.
func (c ReportConfig) Period() string {
	return fmt.Sprintf("%s to %s", c.StartDate.Format(DateLayout), c.EndDate.Format(DateLayout))
}
