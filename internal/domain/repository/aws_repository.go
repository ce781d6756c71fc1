package repository

import (
	"context"
	"time"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	// Cost Explorer
	GetCostAndUsage(ctx context.Context, profile string, cfg entity.ReportConfig) (entity.CostReport, error)
	GetDimensionValues(ctx context.Context, profile string, dimension entity.Dimension, start, end time.Time) ([]entity.DimensionValue, error)
	GetTagValues(ctx context.Context, profile, tagKey string, start, end time.Time) ([]string, error)

	// Account & Budgets
	GetAccountID(ctx context.Context, profile string) (string, error)
	GetBudgets(ctx context.Context, profile string) ([]entity.BudgetInfo, error)

	// Report delivery
	PutObject(ctx context.Context, profile, bucket, key string, body []byte, contentType string) error
}
