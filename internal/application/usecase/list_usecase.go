package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// DefaultListDays é a janela padrão, em dias, usada pelas listagens.
const DefaultListDays = 30

// CustomerTagKey é a tag consultada por "list customers".
const CustomerTagKey = "customer"

// ListAccounts lista as contas vinculadas que tiveram uso na janela informada.
func (uc *ReportUseCase) ListAccounts(ctx context.Context, profile string, days int) error {
	start, end, err := uc.listWindow(days)
	if err != nil {
		return err
	}

	status := uc.console.Status("Fetching linked accounts...")
	accounts, err := uc.awsRepo.GetDimensionValues(ctx, profile, entity.DimensionLinkedAccount, start, end)
	status.Stop()
	if err != nil {
		return fmt.Errorf("error listing accounts: %w", err)
	}

	if len(accounts) == 0 {
		uc.console.LogWarning("No linked accounts found in the last %d days", days)
		return nil
	}

	table := uc.console.CreateTable()
	table.AddColumn("Account ID")
	table.AddColumn("Name")
	for _, a := range accounts {
		table.AddRow(a.Value, a.Description)
	}
	uc.console.Println(table.Render())
	uc.console.LogInfo("%d linked accounts", len(accounts))
	return nil
}

// ListServices lista, em ordem alfabética, os serviços com custo na janela informada.
func (uc *ReportUseCase) ListServices(ctx context.Context, profile string, days int) error {
	start, end, err := uc.listWindow(days)
	if err != nil {
		return err
	}

	status := uc.console.Status("Fetching services...")
	services, err := uc.awsRepo.GetDimensionValues(ctx, profile, entity.DimensionService, start, end)
	status.Stop()
	if err != nil {
		return fmt.Errorf("error listing services: %w", err)
	}

	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Value)
	}
	sort.Strings(names)

	if len(names) == 0 {
		uc.console.LogWarning("No services found in the last %d days", days)
		return nil
	}

	table := uc.console.CreateTable()
	table.AddColumn("Service")
	for _, name := range names {
		table.AddRow(name)
	}
	uc.console.Println(table.Render())
	return nil
}

// ListTagValues lista os valores de uma tag de alocação de custos.
func (uc *ReportUseCase) ListTagValues(ctx context.Context, profile, tagKey string, days int) error {
	if tagKey == "" {
		return types.NewConfigurationError("tag key", "must not be empty")
	}
	start, end, err := uc.listWindow(days)
	if err != nil {
		return err
	}

	status := uc.console.Status(fmt.Sprintf("Fetching values for tag %q...", tagKey))
	values, err := uc.awsRepo.GetTagValues(ctx, profile, tagKey, start, end)
	status.Stop()
	if err != nil {
		return fmt.Errorf("error listing tag %s: %w", tagKey, err)
	}

	// Cost Explorer devolve "" para recursos sem a tag.
	filtered := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			filtered = append(filtered, v)
		}
	}
	sort.Strings(filtered)

	if len(filtered) == 0 {
		uc.console.LogWarning("No values found for tag %q in the last %d days", tagKey, days)
		return nil
	}

	table := uc.console.CreateTable()
	table.AddColumn(tagKey)
	for _, v := range filtered {
		table.AddRow(v)
	}
	uc.console.Println(table.Render())
	return nil
}

// ListBudgets lista os budgets da conta do perfil.
func (uc *ReportUseCase) ListBudgets(ctx context.Context, profile string) error {
	status := uc.console.Status("Fetching budgets...")
	budgets, err := uc.awsRepo.GetBudgets(ctx, profile)
	status.Stop()
	if err != nil {
		return fmt.Errorf("error listing budgets: %w", err)
	}

	if len(budgets) == 0 {
		uc.console.LogWarning("No budgets found")
		return nil
	}

	table := uc.console.CreateTable()
	table.AddColumn("Budget")
	table.AddColumn("Limit")
	table.AddColumn("Actual")
	table.AddColumn("Forecast")
	table.AddColumn("Status")
	for _, b := range budgets {
		table.AddRow(b.Name,
			formatAmount(b.Limit.StringFixed(2), b.Unit),
			formatAmount(b.Actual.StringFixed(2), b.Unit),
			formatAmount(b.Forecast.StringFixed(2), b.Unit),
			budgetStatus(b))
	}
	uc.console.Println(table.Render())
	return nil
}

func budgetStatus(b entity.BudgetInfo) string {
	switch {
	case b.Limit.IsZero():
		return "no limit"
	case b.Actual.GreaterThan(b.Limit):
		return "over budget"
	case b.Forecast.GreaterThan(b.Limit):
		return "forecast over budget"
	default:
		return "ok"
	}
}

func formatAmount(amount, unit string) string {
	if unit == "" {
		return amount
	}
	return amount + " " + unit
}

func (uc *ReportUseCase) listWindow(days int) (time.Time, time.Time, error) {
	if days <= 0 {
		return time.Time{}, time.Time{}, types.NewConfigurationError("--days", "must be greater than zero, got %d", days)
	}
	now := uc.builder.now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -days), end, nil
}
