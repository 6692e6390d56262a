package main

import (
	"context"
	"fmt"
	"os"

	"github.com/diillson/aws-lambda-inventory-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-lambda-inventory-go/internal/adapter/driven/config"
	"github.com/diillson/aws-lambda-inventory-go/internal/adapter/driven/export"
	"github.com/diillson/aws-lambda-inventory-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-lambda-inventory-go/internal/application/usecase"
	"github.com/diillson/aws-lambda-inventory-go/pkg/console"
	"github.com/diillson/aws-lambda-inventory-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	awsRepo, err := aws.NewAWSRepository(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	inventoryUseCase := usecase.NewInventoryUseCase(
		awsRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetInventoryUseCase(inventoryUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
