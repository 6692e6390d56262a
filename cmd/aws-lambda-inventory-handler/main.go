package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/diillson/aws-lambda-inventory-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-lambda-inventory-go/internal/adapter/driven/config"
	"github.com/diillson/aws-lambda-inventory-go/internal/adapter/driven/export"
	"github.com/diillson/aws-lambda-inventory-go/internal/adapter/driving/handler"
	"github.com/diillson/aws-lambda-inventory-go/internal/application/usecase"
	"github.com/diillson/aws-lambda-inventory-go/pkg/console"
)

func main() {
	consoleImpl := console.NewConsole()

	awsRepo, err := aws.NewAWSRepository(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	inventoryUseCase := usecase.NewInventoryUseCase(
		awsRepo,
		export.NewExportRepository(),
		config.NewConfigRepository(),
		consoleImpl,
	)

	lambda.Start(handler.New(inventoryUseCase, consoleImpl).Handle)
}
