package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigFile_Formats(t *testing.T) {
	want := &types.Config{
		Profile:     "billing",
		Days:        30,
		Accounts:    []string{"123456789012"},
		Service:     "rds",
		Filters:     "customer=Acme",
		GroupBy:     []string{"usage_type"},
		Granularity: "daily",
		Metrics:     []string{"UnblendedCost"},
		Output:      "rds.csv",
		ReportType:  []string{"csv", "json"},
	}

	files := map[string]string{
		"report.toml": `
profile = "billing"
days = 30
accounts = ["123456789012"]
service = "rds"
filters = "customer=Acme"
group_by = ["usage_type"]
granularity = "daily"
metrics = ["UnblendedCost"]
output = "rds.csv"
report_type = ["csv", "json"]
`,
		"report.yaml": `
profile: billing
days: 30
accounts: ["123456789012"]
service: rds
filters: customer=Acme
group_by: [usage_type]
granularity: daily
metrics: [UnblendedCost]
output: rds.csv
report_type: [csv, json]
`,
		"report.json": `{
  "profile": "billing",
  "days": 30,
  "accounts": ["123456789012"],
  "service": "rds",
  "filters": "customer=Acme",
  "group_by": ["usage_type"],
  "granularity": "daily",
  "metrics": ["UnblendedCost"],
  "output": "rds.csv",
  "report_type": ["csv", "json"]
}`,
	}

	repo := NewConfigRepository()
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			got, err := repo.LoadConfigFile(writeFile(t, name, content))
			if err != nil {
				t.Fatalf("LoadConfigFile() error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("LoadConfigFile() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown yaml key", "c.yaml", "granularty: daily\n"},
		{"unknown json key", "c.json", `{"group-by": ["service"]}`},
		{"unknown toml key", "c.toml", "regions = [\"us-east-1\"]\n"},
		{"malformed toml", "c.toml", "days = \n"},
		{"negative days", "c.yaml", "days: -1\n"},
		{"unsupported extension", "c.ini", "days=1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.LoadConfigFile(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, types.ErrConfiguration) {
				t.Errorf("expected a configuration error, got %v", err)
			}
		})
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the not-exist cause to be wrapped, got %v", err)
	}
}

func TestLoadConfigFile_EmptyYAML(t *testing.T) {
	repo := NewConfigRepository()
	got, err := repo.LoadConfigFile(writeFile(t, "empty.yml", ""))
	if err != nil {
		t.Fatalf("LoadConfigFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, &types.Config{}) {
		t.Errorf("expected zero config, got %+v", got)
	}
}
