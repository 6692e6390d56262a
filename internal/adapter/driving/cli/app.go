package cli

import (
	"context"
	"path/filepath"

	"github.com/diillson/aws-lambda-inventory-go/pkg/version"

	"github.com/diillson/aws-lambda-inventory-go/internal/application/usecase"
	"github.com/diillson/aws-lambda-inventory-go/internal/shared/types"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	inventoryUseCase *usecase.InventoryUseCase
	version          string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "aws-lambda-inventory",
		Short:   "Cross-account AWS Lambda runtime inventory CLI",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Lambda Inventory version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("role-name", "R", "", "Role to assume in each member account (default: "+usecase.DefaultRoleName+")")
	rootCmd.PersistentFlags().StringSliceP("accounts", "a", nil, "Restrict the traversal to specific account IDs (comma-separated)")
	rootCmd.PersistentFlags().StringSliceP("regions", "r", nil, "Regions to scan instead of each account's enabled regions (comma-separated)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().IntP("workers", "w", 1, "Number of accounts to traverse in parallel (1 = sequential)")
	rootCmd.PersistentFlags().Bool("debug", false, "Emit verbose per-step trace logging")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	roleName, _ := app.rootCmd.Flags().GetString("role-name")
	accounts, _ := app.rootCmd.Flags().GetStringSlice("accounts")
	regions, _ := app.rootCmd.Flags().GetStringSlice("regions")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")
	workers, _ := app.rootCmd.Flags().GetInt("workers")
	debug, _ := app.rootCmd.Flags().GetBool("debug")

	// Vazio fica vazio: o arquivo de configuração ainda pode definir o
	// diretório, e relatórios sem diretório vão para o diretório corrente.
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		RoleName:   roleName,
		Accounts:   accounts,
		Regions:    regions,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		Workers:    workers,
		Debug:      debug,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx := context.Background()
	return app.inventoryUseCase.RunInventory(ctx, cliArgs)
}

// SetInventoryUseCase sets the inventory use case for the CLI app.
func (app *CLIApp) SetInventoryUseCase(useCase *usecase.InventoryUseCase) {
	app.inventoryUseCase = useCase
}
