package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v4"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

const testProfile = "test"

type costStep struct {
	out *costexplorer.GetCostAndUsageOutput
	err error
}

// fakeCostExplorer replays scripted responses; the last cost step repeats.
type fakeCostExplorer struct {
	costSteps []costStep
	costCalls int
	tokens    []string

	dimensionPages []*costexplorer.GetDimensionValuesOutput
	dimensionCalls int
	dimensionInput *costexplorer.GetDimensionValuesInput

	tagPages []*costexplorer.GetTagsOutput
	tagCalls int
}

func (f *fakeCostExplorer) GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	step := f.costSteps[len(f.costSteps)-1]
	if f.costCalls < len(f.costSteps) {
		step = f.costSteps[f.costCalls]
	}
	f.costCalls++
	f.tokens = append(f.tokens, aws.ToString(params.NextPageToken))
	return step.out, step.err
}

func (f *fakeCostExplorer) GetDimensionValues(ctx context.Context, params *costexplorer.GetDimensionValuesInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetDimensionValuesOutput, error) {
	f.dimensionInput = params
	out := f.dimensionPages[f.dimensionCalls]
	f.dimensionCalls++
	return out, nil
}

func (f *fakeCostExplorer) GetTags(ctx context.Context, params *costexplorer.GetTagsInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetTagsOutput, error) {
	out := f.tagPages[f.tagCalls]
	f.tagCalls++
	return out, nil
}

func newTestRepository(clients map[string]interface{}) *AWSRepositoryImpl {
	r := NewAWSRepository(nil)
	r.retry = retryPolicy{
		maxAttempts: 3,
		newBackOff:  func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	}
	for key, client := range clients {
		r.clientCache[key] = client
	}
	return r
}

func withCostExplorer(ce costExplorerAPI) map[string]interface{} {
	return map[string]interface{}{clientCacheKey(testProfile, "", "costexplorer"): ce}
}

func ungroupedPage(start, end, amount, next string) *costexplorer.GetCostAndUsageOutput {
	out := &costexplorer.GetCostAndUsageOutput{
		ResultsByTime: []ceTypes.ResultByTime{{
			TimePeriod: period(start, end),
			Total:      map[string]ceTypes.MetricValue{"BlendedCost": metric(amount), "UnblendedCost": metric(amount)},
		}},
	}
	if next != "" {
		out.NextPageToken = aws.String(next)
	}
	return out
}

func throttled() error {
	return &smithy.GenericAPIError{Code: "ThrottlingException", Message: "Rate exceeded"}
}

func TestGetCostAndUsage_FollowsPagination(t *testing.T) {
	fake := &fakeCostExplorer{costSteps: []costStep{
		{out: ungroupedPage("2024-01-01", "2024-01-02", "1", "page-2")},
		{out: ungroupedPage("2024-01-02", "2024-01-03", "2", "page-3")},
		{out: ungroupedPage("2024-01-03", "2024-01-04", "3", "")},
	}}
	repo := newTestRepository(withCostExplorer(fake))

	report, err := repo.GetCostAndUsage(context.Background(), testProfile, baseConfig())
	if err != nil {
		t.Fatalf("GetCostAndUsage() error: %v", err)
	}

	if fake.costCalls != 3 {
		t.Errorf("expected 3 calls, got %d", fake.costCalls)
	}
	wantTokens := []string{"", "page-2", "page-3"}
	for i, tok := range wantTokens {
		if fake.tokens[i] != tok {
			t.Errorf("call %d: expected token %q, got %q", i, tok, fake.tokens[i])
		}
	}
	if len(report.Rows) != 3 || report.Periods != 3 {
		t.Errorf("expected 3 rows over 3 periods, got %d rows over %d periods", len(report.Rows), report.Periods)
	}
	if report.Rows[2].Metrics["BlendedCost"].Amount.String() != "3" {
		t.Errorf("last row should come from the last page, got %+v", report.Rows[2])
	}
}

func TestGetCostAndUsage_PageLimit(t *testing.T) {
	fake := &fakeCostExplorer{costSteps: []costStep{
		{out: ungroupedPage("2024-01-01", "2024-01-02", "1", "again")},
	}}
	repo := newTestRepository(withCostExplorer(fake))
	repo.maxPages = 4

	_, err := repo.GetCostAndUsage(context.Background(), testProfile, baseConfig())
	if !errors.Is(err, types.ErrRemoteService) {
		t.Fatalf("expected a remote service error, got %v", err)
	}
	if fake.costCalls != 4 {
		t.Errorf("expected exactly 4 calls before giving up, got %d", fake.costCalls)
	}
}

func TestGetCostAndUsage_RetriesThrottling(t *testing.T) {
	fake := &fakeCostExplorer{costSteps: []costStep{
		{err: throttled()},
		{err: &ceTypes.LimitExceededException{Message: aws.String("slow down")}},
		{out: ungroupedPage("2024-01-01", "2024-01-02", "5", "")},
	}}
	repo := newTestRepository(withCostExplorer(fake))

	report, err := repo.GetCostAndUsage(context.Background(), testProfile, baseConfig())
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if fake.costCalls != 3 {
		t.Errorf("expected 3 attempts, got %d", fake.costCalls)
	}
	if len(report.Rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(report.Rows))
	}
}

func TestGetCostAndUsage_GivesUpAfterThreeAttempts(t *testing.T) {
	fake := &fakeCostExplorer{costSteps: []costStep{{err: throttled()}}}
	repo := newTestRepository(withCostExplorer(fake))

	_, err := repo.GetCostAndUsage(context.Background(), testProfile, baseConfig())

	var rse *types.RemoteServiceError
	if !errors.As(err, &rse) {
		t.Fatalf("expected *types.RemoteServiceError, got %T: %v", err, err)
	}
	if !rse.Throttled || rse.Code != "ThrottlingException" {
		t.Errorf("expected throttled ThrottlingException, got %+v", rse)
	}
	if fake.costCalls != 3 {
		t.Errorf("expected 3 attempts, got %d", fake.costCalls)
	}
}

func TestGetCostAndUsage_AuthErrorNotRetried(t *testing.T) {
	fake := &fakeCostExplorer{costSteps: []costStep{
		{err: &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized to perform ce:GetCostAndUsage"}},
	}}
	repo := newTestRepository(withCostExplorer(fake))

	_, err := repo.GetCostAndUsage(context.Background(), testProfile, baseConfig())

	var rse *types.RemoteServiceError
	if !errors.As(err, &rse) {
		t.Fatalf("expected *types.RemoteServiceError, got %T: %v", err, err)
	}
	if rse.Code != "AccessDeniedException" || rse.Throttled {
		t.Errorf("unexpected error classification: %+v", rse)
	}
	if rse.Op != "GetCostAndUsage" {
		t.Errorf("expected op GetCostAndUsage, got %s", rse.Op)
	}
	if fake.costCalls != 1 {
		t.Errorf("auth errors must not be retried, got %d calls", fake.costCalls)
	}
}

func TestGetCostAndUsage_NonAPIErrorNotRetried(t *testing.T) {
	fake := &fakeCostExplorer{costSteps: []costStep{{err: errors.New("dial tcp: connection refused")}}}
	repo := newTestRepository(withCostExplorer(fake))

	_, err := repo.GetCostAndUsage(context.Background(), testProfile, baseConfig())
	if !errors.Is(err, types.ErrRemoteService) {
		t.Fatalf("expected a remote service error, got %v", err)
	}
	if fake.costCalls != 1 {
		t.Errorf("expected a single attempt, got %d", fake.costCalls)
	}
}

func TestGetDimensionValues_Paginates(t *testing.T) {
	fake := &fakeCostExplorer{dimensionPages: []*costexplorer.GetDimensionValuesOutput{
		{
			DimensionValues: []ceTypes.DimensionValuesWithAttributes{
				{Value: aws.String("111111111111"), Attributes: map[string]string{"description": "prod"}},
			},
			NextPageToken: aws.String("next"),
		},
		{
			DimensionValues: []ceTypes.DimensionValuesWithAttributes{
				{Value: aws.String("222222222222")},
			},
		},
	}}
	repo := newTestRepository(withCostExplorer(fake))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	values, err := repo.GetDimensionValues(context.Background(), testProfile, entity.DimensionLinkedAccount, start, start.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("GetDimensionValues() error: %v", err)
	}

	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	if values[0].Value != "111111111111" || values[0].Description != "prod" {
		t.Errorf("unexpected first value: %+v", values[0])
	}
	if values[1].Description != "" {
		t.Errorf("expected empty description, got %q", values[1].Description)
	}
	if fake.dimensionInput.Dimension != ceTypes.DimensionLinkedAccount {
		t.Errorf("expected LINKED_ACCOUNT dimension, got %s", fake.dimensionInput.Dimension)
	}
	if aws.ToString(fake.dimensionInput.TimePeriod.End) != "2024-02-01" {
		t.Errorf("unexpected time period end %s", aws.ToString(fake.dimensionInput.TimePeriod.End))
	}
}

func TestGetTagValues_Paginates(t *testing.T) {
	fake := &fakeCostExplorer{tagPages: []*costexplorer.GetTagsOutput{
		{Tags: []string{"Acme", "Globex"}, NextPageToken: aws.String("more")},
		{Tags: []string{"Initech"}},
	}}
	repo := newTestRepository(withCostExplorer(fake))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tags, err := repo.GetTagValues(context.Background(), testProfile, "customer", start, start.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("GetTagValues() error: %v", err)
	}
	if len(tags) != 3 || tags[2] != "Initech" {
		t.Errorf("unexpected tags: %v", tags)
	}
}
