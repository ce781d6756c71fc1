package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	Profile     string
	Days        *int
	DateRange   []string
	Account     string
	Accounts    string
	Service     string
	Filters     string
	GroupBy     string
	Granularity string
	Metrics     []string
	Output      string
	ReportType  []string
}
