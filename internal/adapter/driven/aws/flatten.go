package aws

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// flattenResults percorre períodos e grupos na ordem da resposta e gera uma linha por
// grupo, ou uma linha por período a partir de Total quando não há agrupamento.
func flattenResults(results []ceTypes.ResultByTime, cfg entity.ReportConfig) ([]entity.CostRow, error) {
	rows := []entity.CostRow{}

	for _, period := range results {
		var start, end string
		if period.TimePeriod != nil {
			start = aws.ToString(period.TimePeriod.Start)
			end = aws.ToString(period.TimePeriod.End)
		}

		if len(cfg.GroupBy) == 0 {
			metrics, err := convertMetrics(period.Total)
			if err != nil {
				return nil, fmt.Errorf("period %s: %w", start, err)
			}
			rows = append(rows, entity.CostRow{
				PeriodStart: start,
				PeriodEnd:   end,
				Estimated:   period.Estimated,
				GroupValues: []string{},
				Metrics:     metrics,
			})
			continue
		}

		for _, group := range period.Groups {
			metrics, err := convertMetrics(group.Metrics)
			if err != nil {
				return nil, fmt.Errorf("period %s, group %s: %w", start, strings.Join(group.Keys, "|"), err)
			}
			rows = append(rows, entity.CostRow{
				PeriodStart: start,
				PeriodEnd:   end,
				Estimated:   period.Estimated,
				GroupValues: groupValues(group.Keys, cfg.GroupBy),
				Metrics:     metrics,
			})
		}
	}

	return rows, nil
}

// groupValues remove o prefixo "key$" que Cost Explorer coloca nos valores de tag.
func groupValues(keys []string, groupBy []entity.GroupKey) []string {
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = k
		if i < len(groupBy) && groupBy[i].Type == entity.GroupKeyTag {
			values[i] = strings.TrimPrefix(k, groupBy[i].Key+"$")
		}
	}
	return values
}

func convertMetrics(in map[string]ceTypes.MetricValue) (map[string]entity.MetricValue, error) {
	out := make(map[string]entity.MetricValue, len(in))
	for name, v := range in {
		amount := decimal.Zero
		if raw := aws.ToString(v.Amount); raw != "" {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("metric %s: invalid amount %q: %w", name, raw, err)
			}
			amount = d
		}
		out[name] = entity.MetricValue{Amount: amount, Unit: aws.ToString(v.Unit)}
	}
	return out, nil
}

// countPeriods conta os períodos distintos. Uma consulta agrupada e paginada pode
// repetir o mesmo período em páginas diferentes.
func countPeriods(results []ceTypes.ResultByTime) int {
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		key := ""
		if r.TimePeriod != nil {
			key = aws.ToString(r.TimePeriod.Start) + "/" + aws.ToString(r.TimePeriod.End)
		}
		seen[key] = true
	}
	return len(seen)
}
