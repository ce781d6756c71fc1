package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-report-go/internal/application/usecase"
	"github.com/diillson/aws-cost-report-go/pkg/console"
	"github.com/diillson/aws-cost-report-go/pkg/version"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	// AWS_PROFILE, AWS_REGION etc. podem vir de um .env local.
	_ = godotenv.Load()

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	var opts []console.Option
	if cli.NoColor(os.Args[1:]) || !isatty.IsTerminal(os.Stdout.Fd()) {
		opts = append(opts, console.WithNoColor())
	}
	consoleImpl := console.NewConsole(opts...)

	// Inicializa os repositórios
	awsRepo := aws.NewAWSRepository(consoleImpl)
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()

	reportUseCase := usecase.NewReportUseCase(
		awsRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)
	app.SetReportUseCase(reportUseCase)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
