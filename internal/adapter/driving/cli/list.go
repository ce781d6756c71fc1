package cli

import (
	"github.com/diillson/aws-cost-report-go/internal/application/usecase"
	"github.com/spf13/cobra"
)

// newListCommand cria o comando "list" e seus subcomandos utilitários.
func (app *CLIApp) newListCommand() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts, services, tag values or budgets",
	}
	listCmd.PersistentFlags().Int("days", usecase.DefaultListDays, "Lookback window in days")

	listCmd.AddCommand(
		&cobra.Command{
			Use:   "accounts",
			Short: "List linked accounts with usage in the window",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				profile, days, err := app.listOptions(cmd)
				if err != nil {
					return err
				}
				return app.reportUseCase.ListAccounts(cmd.Context(), profile, days)
			},
		},
		&cobra.Command{
			Use:   "services",
			Short: "List services with cost in the window",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				profile, days, err := app.listOptions(cmd)
				if err != nil {
					return err
				}
				return app.reportUseCase.ListServices(cmd.Context(), profile, days)
			},
		},
		&cobra.Command{
			Use:   "tags [KEY]",
			Short: "List values of a cost allocation tag (default: customer)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key := usecase.CustomerTagKey
				if len(args) == 1 {
					key = args[0]
				}
				return app.listTagValues(cmd, key)
			},
		},
		&cobra.Command{
			Use:   "customers",
			Short: "List values of the customer tag",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.listTagValues(cmd, usecase.CustomerTagKey)
			},
		},
		&cobra.Command{
			Use:   "budgets",
			Short: "List AWS Budgets with actual and forecasted spend",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				profile, err := app.profileFor(cmd)
				if err != nil {
					return err
				}
				return app.reportUseCase.ListBudgets(cmd.Context(), profile)
			},
		},
	)

	return listCmd
}

func (app *CLIApp) listTagValues(cmd *cobra.Command, key string) error {
	profile, days, err := app.listOptions(cmd)
	if err != nil {
		return err
	}
	return app.reportUseCase.ListTagValues(cmd.Context(), profile, key, days)
}

func (app *CLIApp) listOptions(cmd *cobra.Command) (string, int, error) {
	profile, err := app.profileFor(cmd)
	if err != nil {
		return "", 0, err
	}
	days, _ := cmd.Flags().GetInt("days")
	return profile, days, nil
}
