package cli

import (
	"context"
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/application/usecase"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/diillson/aws-cost-report-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// flagAliases mapeia nomes alternativos para as flags canônicas.
var flagAliases = map[string]string{
	"linked-account":  "account",
	"linked-accounts": "accounts",
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:   "aws-cost-report",
		Short: "Export AWS Cost Explorer data to CSV, JSON or PDF",
		Long: `Queries AWS Cost Explorer with the given filters, groupings and time range
and writes one row per period and group to the output file.`,
		Example: `  aws-cost-report --days 30 --service rds --group-by usage_type
  aws-cost-report --date-range 2024-01-01,2024-02-01 --filters "customer=acme;region=us-east-1" -y csv,json`,
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runReport,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Report version: %s\n" .Version}}`)

	// Flags comuns a todos os comandos
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile to use (default: the SDK default chain)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colors and spinners")

	// Flags do relatório
	flags := rootCmd.Flags()
	flags.Int("days", 0, "Number of days to look back from today (UTC)")
	flags.StringSlice("date-range", nil, "Explicit time range as START,END (YYYY-MM-DD, YYYY/MM/DD or MM/DD/YYYY); END is exclusive")
	flags.String("account", "", "Linked account ID to filter by (alias: --linked-account)")
	flags.String("accounts", "", "Comma-separated linked account IDs (alias: --linked-accounts)")
	flags.String("service", "", "Service to filter by; short names like rds, ec2, s3 and lambda are expanded")
	flags.String("filters", "", `Filters as "key=v1,v2;key2=v3"; unknown keys are treated as cost allocation tags`)
	flags.String("group-by", "", "Comma-separated dimensions or tag:<key> to group by (max 2)")
	flags.String("granularity", "monthly", "Time granularity: daily, monthly or hourly")
	flags.StringSlice("metrics", nil, "Cost metrics to include (default: BlendedCost,UnblendedCost)")
	flags.StringP("output", "o", "cost_report.csv", "Output file path or s3://bucket/key")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Report types: csv, json, pdf")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.AddCommand(app.newListCommand())

	app.rootCmd = rootCmd
	return app
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// Execute runs the CLI application.
func (app *CLIApp) Execute(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// NoColor reports whether --no-color was given. It is read before the console exists.
func NoColor(args []string) bool {
	for _, a := range args {
		if a == "--no-color" || a == "--no-color=true" {
			return true
		}
	}
	return false
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}

// parseArgs converte as flags do comando em CLIArgs.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	profile, _ := flags.GetString("profile")
	days, _ := flags.GetInt("days")
	dateRange, _ := flags.GetStringSlice("date-range")
	account, _ := flags.GetString("account")
	accounts, _ := flags.GetString("accounts")
	service, _ := flags.GetString("service")
	filters, _ := flags.GetString("filters")
	groupBy, _ := flags.GetString("group-by")
	granularity, _ := flags.GetString("granularity")
	metrics, _ := flags.GetStringSlice("metrics")
	output, _ := flags.GetString("output")
	reportType, _ := flags.GetStringSlice("report-type")

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		Profile:     profile,
		DateRange:   dateRange,
		Account:     account,
		Accounts:    accounts,
		Service:     service,
		Filters:     filters,
		GroupBy:     groupBy,
		Granularity: granularity,
		Metrics:     metrics,
		Output:      output,
		ReportType:  reportType,
	}
	// --days 0 precisa chegar ao ConfigBuilder para ser rejeitado.
	if flags.Changed("days") {
		args.Days = &days
	}

	if configFile != "" {
		fileCfg, err := app.reportUseCase.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		usecase.MergeConfig(args, fileCfg, flags.Changed)
	}

	return args, nil
}

// runReport é o ponto de entrada do comando principal.
func (app *CLIApp) runReport(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(cmd.OutOrStdout())

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	return app.reportUseCase.RunReport(cmd.Context(), cliArgs)
}

// profileFor resolve o perfil de um subcomando, considerando o arquivo de configuração.
func (app *CLIApp) profileFor(cmd *cobra.Command) (string, error) {
	profile, _ := cmd.Flags().GetString("profile")
	configFile, _ := cmd.Flags().GetString("config-file")
	if configFile == "" || cmd.Flags().Changed("profile") {
		return profile, nil
	}

	fileCfg, err := app.reportUseCase.LoadConfigFile(configFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(fileCfg.Profile), nil
}
