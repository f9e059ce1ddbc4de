package main

import (
	"fmt"
	"os"

	"github.com/costsynth/costsynth-go/internal/adapter/driven/config"
	"github.com/costsynth/costsynth-go/internal/adapter/driven/delivery"
	"github.com/costsynth/costsynth-go/internal/adapter/driven/export"
	"github.com/costsynth/costsynth-go/internal/adapter/driving/cli"
	"github.com/costsynth/costsynth-go/internal/application/usecase"
	"github.com/costsynth/costsynth-go/pkg/console"
	"github.com/costsynth/costsynth-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Credenciais de ingresso vêm do ambiente; vazias desabilitam a autenticação
	creds := delivery.InsightsCredentials{
		User:     os.Getenv("INSIGHTS_USER"),
		Password: os.Getenv("INSIGHTS_PASSWORD"),
	}

	// Inicializa os repositórios
	consoleImpl := console.NewConsole()
	configRepo := config.NewConfigRepository()
	exportRepo := export.NewExportRepository()
	deliveryRepo := delivery.NewDeliveryRepository(consoleImpl, creds)

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		configRepo,
		exportRepo,
		deliveryRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetReportUseCase(reportUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
