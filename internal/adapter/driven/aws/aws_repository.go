package aws

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

// Cost Explorer and Budgets are global services served from us-east-1.
const billingRegion = "us-east-1"

// defaultMaxPages bounds every NextPageToken loop.
const defaultMaxPages = 100

type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	GetDimensionValues(ctx context.Context, params *costexplorer.GetDimensionValuesInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetDimensionValuesOutput, error)
	GetTags(ctx context.Context, params *costexplorer.GetTagsInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetTagsOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// AWSRepositoryImpl implementa o AWSRepository com cache de clientes.
type AWSRepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex

	console  types.ConsoleInterface
	retry    retryPolicy
	maxPages int
}

var _ repository.AWSRepository = (*AWSRepositoryImpl)(nil)

// NewAWSRepository cria uma nova implementação do AWSRepository.
// console may be nil; it only receives throttling notices.
func NewAWSRepository(console types.ConsoleInterface) *AWSRepositoryImpl {
	return &AWSRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
		console:     console,
		retry:       defaultRetryPolicy(),
		maxPages:    defaultMaxPages,
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func clientCacheKey(profile, region, service string) string {
	return fmt.Sprintf("%s-%s-%s", profile, region, service)
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, region, service string) (interface{}, error) {
	cacheKey := clientCacheKey(profile, region, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "costexplorer":
		regionalCfg.Region = billingRegion
		// Throttling is retried by withRetry so the attempt budget is ours.
		client = costexplorer.NewFromConfig(regionalCfg, func(o *costexplorer.Options) {
			o.Retryer = aws.NopRetryer{}
		})
	case "budgets":
		regionalCfg.Region = billingRegion
		client = budgets.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

func (r *AWSRepositoryImpl) costExplorer(ctx context.Context, profile string) (costExplorerAPI, error) {
	client, err := r.getServiceClient(ctx, profile, "", "costexplorer")
	if err != nil {
		return nil, err
	}
	ce, ok := client.(costExplorerAPI)
	if !ok {
		return nil, fmt.Errorf("unexpected Cost Explorer client type %T", client)
	}
	return ce, nil
}

// GetAccountID returns the account behind the profile's credentials.
func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	client, err := r.getServiceClient(ctx, profile, billingRegion, "sts")
	if err != nil {
		return "", err
	}
	stsClient, ok := client.(stsAPI)
	if !ok {
		return "", fmt.Errorf("unexpected STS client type %T", client)
	}

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", wrapRemoteError("GetCallerIdentity", err)
	}
	return aws.ToString(result.Account), nil
}

// GetBudgets lists every budget of the profile's account.
func (r *AWSRepositoryImpl) GetBudgets(ctx context.Context, profile string) ([]entity.BudgetInfo, error) {
	client, err := r.getServiceClient(ctx, profile, "", "budgets")
	if err != nil {
		return nil, err
	}
	budgetsClient, ok := client.(budgets.DescribeBudgetsAPIClient)
	if !ok {
		return nil, fmt.Errorf("unexpected Budgets client type %T", client)
	}

	accountID, err := r.GetAccountID(ctx, profile)
	if err != nil {
		return nil, err
	}

	budgetsData := []entity.BudgetInfo{}
	paginator := budgets.NewDescribeBudgetsPaginator(budgetsClient, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(accountID),
	})
	for pages := 0; paginator.HasMorePages(); pages++ {
		if pages >= r.maxPages {
			return nil, pageLimitError("DescribeBudgets", r.maxPages)
		}
		result, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapRemoteError("DescribeBudgets", err)
		}
		for _, budget := range result.Budgets {
			b := entity.BudgetInfo{Name: aws.ToString(budget.BudgetName)}
			if budget.BudgetLimit != nil {
				b.Limit = parseAmount(budget.BudgetLimit.Amount)
				b.Unit = aws.ToString(budget.BudgetLimit.Unit)
			}
			if budget.CalculatedSpend != nil {
				if budget.CalculatedSpend.ActualSpend != nil {
					b.Actual = parseAmount(budget.CalculatedSpend.ActualSpend.Amount)
				}
				if budget.CalculatedSpend.ForecastedSpend != nil {
					b.Forecast = parseAmount(budget.CalculatedSpend.ForecastedSpend.Amount)
				}
			}
			budgetsData = append(budgetsData, b)
		}
	}

	return budgetsData, nil
}

// PutObject uploads a rendered report.
func (r *AWSRepositoryImpl) PutObject(ctx context.Context, profile, bucket, key string, body []byte, contentType string) error {
	client, err := r.getServiceClient(ctx, profile, "", "s3")
	if err != nil {
		return err
	}
	s3Client, ok := client.(s3API)
	if !ok {
		return fmt.Errorf("unexpected S3 client type %T", client)
	}

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return &types.OutputError{Path: fmt.Sprintf("s3://%s/%s", bucket, key), Err: wrapRemoteError("PutObject", err)}
	}
	return nil
}

// Budget amounts are informational; unparsable values read as zero.
func parseAmount(s *string) decimal.Decimal {
	d, err := decimal.NewFromString(aws.ToString(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
