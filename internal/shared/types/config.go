package types

// Config represents the application configuration that can be loaded from a file.
// Values only apply to flags not set on the command line.
type Config struct {
	Profile     string   `json:"profile" yaml:"profile" toml:"profile"`
	Days        int      `json:"days" yaml:"days" toml:"days"`
	Accounts    []string `json:"accounts" yaml:"accounts" toml:"accounts"`
	Service     string   `json:"service" yaml:"service" toml:"service"`
	Filters     string   `json:"filters" yaml:"filters" toml:"filters"`
	GroupBy     []string `json:"group_by" yaml:"group_by" toml:"group_by"`
	Granularity string   `json:"granularity" yaml:"granularity" toml:"granularity"`
	Metrics     []string `json:"metrics" yaml:"metrics" toml:"metrics"`
	Output      string   `json:"output" yaml:"output" toml:"output"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
}
