package usecase

import (
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// MergeConfig aplica os valores do arquivo de configuração apenas às flags que o usuário não informou.
// isSet recebe o nome da flag longa.
func MergeConfig(args *types.CLIArgs, fileCfg *types.Config, isSet func(flag string) bool) {
	if fileCfg == nil {
		return
	}

	if fileCfg.Profile != "" && !isSet("profile") {
		args.Profile = fileCfg.Profile
	}
	// --date-range exclui --days, então o arquivo não pode reintroduzir o conflito.
	if fileCfg.Days > 0 && !isSet("days") && !isSet("date-range") {
		days := fileCfg.Days
		args.Days = &days
	}
	if len(fileCfg.Accounts) > 0 && !isSet("accounts") {
		args.Accounts = strings.Join(fileCfg.Accounts, ",")
	}
	if fileCfg.Service != "" && !isSet("service") {
		args.Service = fileCfg.Service
	}
	if fileCfg.Filters != "" && !isSet("filters") {
		args.Filters = fileCfg.Filters
	}
	if len(fileCfg.GroupBy) > 0 && !isSet("group-by") {
		args.GroupBy = strings.Join(fileCfg.GroupBy, ",")
	}
	if fileCfg.Granularity != "" && !isSet("granularity") {
		args.Granularity = fileCfg.Granularity
	}
	if len(fileCfg.Metrics) > 0 && !isSet("metrics") {
		args.Metrics = append([]string(nil), fileCfg.Metrics...)
	}
	if fileCfg.Output != "" && !isSet("output") {
		args.Output = fileCfg.Output
	}
	if len(fileCfg.ReportType) > 0 && !isSet("report-type") {
		args.ReportType = append([]string(nil), fileCfg.ReportType...)
	}
}
