package entity

import "github.com/shopspring/decimal"

// BudgetInfo representa um budget com gasto real e previsto.
type BudgetInfo struct {
	Name     string          `json:"name"`
	Limit    decimal.Decimal `json:"limit"`
	Actual   decimal.Decimal `json:"actual"`
	Forecast decimal.Decimal `json:"forecast,omitempty"`
	Unit     string          `json:"unit"`
}
