package entity

import "github.com/shopspring/decimal"

// MetricValue é o valor de uma métrica como retornado pelo Cost Explorer.
type MetricValue struct {
	Amount decimal.Decimal `json:"amount"`
	Unit   string          `json:"unit"`
}

// CostRow é um registro de saída já achatado. Linhas não mudam depois disso.
type CostRow struct {
	PeriodStart string                 `json:"period_start"`
	PeriodEnd   string                 `json:"period_end"`
	Estimated   bool                   `json:"estimated"`
	GroupValues []string               `json:"group_values"`
	Metrics     map[string]MetricValue `json:"metrics"`
}

// CostReport é o resultado achatado de uma consulta junto com a configuração que o gerou.
type CostReport struct {
	Config  ReportConfig `json:"config"`
	Periods int          `json:"periods"`
	Rows    []CostRow    `json:"rows"`
}
