package aws

import (
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// buildCostAndUsageInput converte uma configuração validada na requisição do Cost Explorer.
func buildCostAndUsageInput(cfg entity.ReportConfig) *costexplorer.GetCostAndUsageInput {
	metrics := make([]string, len(cfg.Metrics))
	copy(metrics, cfg.Metrics)

	return &costexplorer.GetCostAndUsageInput{
		TimePeriod:  dateInterval(cfg),
		Granularity: ceTypes.Granularity(cfg.Granularity),
		Metrics:     metrics,
		GroupBy:     buildGroupBy(cfg.GroupBy),
		Filter:      buildFilter(cfg),
	}
}

// dateInterval usa data pura, exceto em HOURLY, que exige yyyy-MM-ddThh:mm:ssZ.
func dateInterval(cfg entity.ReportConfig) *ceTypes.DateInterval {
	layout := entity.DateLayout
	if cfg.Granularity == entity.GranularityHourly {
		layout = entity.HourlyLayout
	}
	return &ceTypes.DateInterval{
		Start: aws.String(cfg.StartDate.UTC().Format(layout)),
		End:   aws.String(cfg.EndDate.UTC().Format(layout)),
	}
}

// buildFilter combina com And os predicados de conta, dimensão e tag.
// Um único predicado vai sem And, pois Cost Explorer rejeita And com um só operando.
func buildFilter(cfg entity.ReportConfig) *ceTypes.Expression {
	var expressions []ceTypes.Expression

	if len(cfg.LinkedAccountIDs) > 0 {
		expressions = append(expressions, dimensionExpression(entity.DimensionLinkedAccount, cfg.LinkedAccountIDs))
	}

	dims := make([]string, 0, len(cfg.Filters))
	for d := range cfg.Filters {
		dims = append(dims, string(d))
	}
	sort.Strings(dims)
	for _, d := range dims {
		values := cfg.Filters[entity.Dimension(d)]
		if len(values) == 0 {
			continue
		}
		expressions = append(expressions, dimensionExpression(entity.Dimension(d), values))
	}

	tagKeys := make([]string, 0, len(cfg.TagFilters))
	for k := range cfg.TagFilters {
		tagKeys = append(tagKeys, k)
	}
	sort.Strings(tagKeys)
	for _, k := range tagKeys {
		values := cfg.TagFilters[k]
		if len(values) == 0 {
			continue
		}
		expressions = append(expressions, ceTypes.Expression{
			Tags: &ceTypes.TagValues{
				Key:          aws.String(k),
				Values:       cloneStrings(values),
				MatchOptions: []ceTypes.MatchOption{ceTypes.MatchOptionEquals},
			},
		})
	}

	switch len(expressions) {
	case 0:
		return nil
	case 1:
		return &expressions[0]
	default:
		return &ceTypes.Expression{And: expressions}
	}
}

func dimensionExpression(d entity.Dimension, values []string) ceTypes.Expression {
	return ceTypes.Expression{
		Dimensions: &ceTypes.DimensionValues{
			Key:          ceTypes.Dimension(d),
			Values:       cloneStrings(values),
			MatchOptions: []ceTypes.MatchOption{ceTypes.MatchOptionEquals},
		},
	}
}

func buildGroupBy(keys []entity.GroupKey) []ceTypes.GroupDefinition {
	if len(keys) == 0 {
		return nil
	}
	groups := make([]ceTypes.GroupDefinition, 0, len(keys))
	for _, k := range keys {
		groupType := ceTypes.GroupDefinitionTypeDimension
		if k.Type == entity.GroupKeyTag {
			groupType = ceTypes.GroupDefinitionTypeTag
		}
		groups = append(groups, ceTypes.GroupDefinition{
			Type: groupType,
			Key:  aws.String(k.Key),
		})
	}
	return groups
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
