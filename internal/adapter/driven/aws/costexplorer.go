package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// GetCostAndUsage runs the report query, following NextPageToken until the result
// is complete, and returns the flattened rows.
func (r *AWSRepositoryImpl) GetCostAndUsage(ctx context.Context, profile string, cfg entity.ReportConfig) (entity.CostReport, error) {
	client, err := r.costExplorer(ctx, profile)
	if err != nil {
		return entity.CostReport{}, err
	}

	input := buildCostAndUsageInput(cfg)
	var results []ceTypes.ResultByTime

	for page := 0; ; page++ {
		if page >= r.maxPages {
			return entity.CostReport{}, pageLimitError("GetCostAndUsage", r.maxPages)
		}

		var output *costexplorer.GetCostAndUsageOutput
		err := r.withRetry(ctx, "GetCostAndUsage", func() error {
			var callErr error
			output, callErr = client.GetCostAndUsage(ctx, input)
			return callErr
		})
		if err != nil {
			return entity.CostReport{}, err
		}

		results = append(results, output.ResultsByTime...)
		if aws.ToString(output.NextPageToken) == "" {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	rows, err := flattenResults(results, cfg)
	if err != nil {
		return entity.CostReport{}, err
	}

	return entity.CostReport{
		Config:  cfg,
		Periods: countPeriods(results),
		Rows:    rows,
	}, nil
}

// GetDimensionValues lists the distinct values of a dimension seen in the period.
func (r *AWSRepositoryImpl) GetDimensionValues(ctx context.Context, profile string, dimension entity.Dimension, start, end time.Time) ([]entity.DimensionValue, error) {
	client, err := r.costExplorer(ctx, profile)
	if err != nil {
		return nil, err
	}

	input := &costexplorer.GetDimensionValuesInput{
		Dimension: ceTypes.Dimension(dimension),
		Context:   ceTypes.ContextCostAndUsage,
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format(entity.DateLayout)),
			End:   aws.String(end.Format(entity.DateLayout)),
		},
	}

	values := []entity.DimensionValue{}
	for page := 0; ; page++ {
		if page >= r.maxPages {
			return nil, pageLimitError("GetDimensionValues", r.maxPages)
		}

		var output *costexplorer.GetDimensionValuesOutput
		err := r.withRetry(ctx, "GetDimensionValues", func() error {
			var callErr error
			output, callErr = client.GetDimensionValues(ctx, input)
			return callErr
		})
		if err != nil {
			return nil, err
		}

		for _, v := range output.DimensionValues {
			values = append(values, entity.DimensionValue{
				Value:       aws.ToString(v.Value),
				Description: v.Attributes["description"],
			})
		}
		if aws.ToString(output.NextPageToken) == "" {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	return values, nil
}

// GetTagValues lists the values recorded for a cost allocation tag in the period.
func (r *AWSRepositoryImpl) GetTagValues(ctx context.Context, profile, tagKey string, start, end time.Time) ([]string, error) {
	client, err := r.costExplorer(ctx, profile)
	if err != nil {
		return nil, err
	}

	input := &costexplorer.GetTagsInput{
		TagKey: aws.String(tagKey),
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format(entity.DateLayout)),
			End:   aws.String(end.Format(entity.DateLayout)),
		},
	}

	tags := []string{}
	for page := 0; ; page++ {
		if page >= r.maxPages {
			return nil, pageLimitError("GetTags", r.maxPages)
		}

		var output *costexplorer.GetTagsOutput
		err := r.withRetry(ctx, "GetTags", func() error {
			var callErr error
			output, callErr = client.GetTags(ctx, input)
			return callErr
		})
		if err != nil {
			return nil, err
		}

		tags = append(tags, output.Tags...)
		if aws.ToString(output.NextPageToken) == "" {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	return tags, nil
}
