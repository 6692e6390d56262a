package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/diillson/aws-lambda-inventory-go/internal/domain/entity"
	"github.com/diillson/aws-lambda-inventory-go/internal/domain/lifecycle"
	"github.com/diillson/aws-lambda-inventory-go/internal/domain/repository"
	"github.com/diillson/aws-lambda-inventory-go/internal/shared/types"
)

// DefaultRoleName é a role bem conhecida esperada em toda conta membro,
// confiando na identidade de execução do orquestrador.
const DefaultRoleName = "CrossAccountLambdaListerRole"

// InventoryUseCase orquestra a travessia conta × região × função.
type InventoryUseCase struct {
	awsRepo    repository.AWSRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	table      lifecycle.Table
	now        func() time.Time
}

// NewInventoryUseCase creates a new inventory use case.
func NewInventoryUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *InventoryUseCase {
	return &InventoryUseCase{
		awsRepo:    awsRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		table:      lifecycle.Default(),
		now:        time.Now,
	}
}

// CollectOptions controla uma execução da travessia.
type CollectOptions struct {
	// RoleName vazio usa DefaultRoleName.
	RoleName string
	// Accounts restringe a travessia a essas contas; vazio = todas.
	Accounts []string
	// Regions substitui a listagem de regiões habilitadas; vazio = listar por conta.
	Regions []string
	// Workers > 1 processa contas em paralelo, cada worker com sua própria
	// credencial delegada. <= 1 mantém a travessia sequencial.
	Workers int
	// OnAccountsListed, se definido, recebe o total de contas a percorrer.
	OnAccountsListed func(total int)
	// OnAccountDone, se definido, é chamado ao fim de cada conta (progresso).
	OnAccountDone func()
}

// CollectInventory executa a travessia completa e retorna a coleção de
// registros mais o manifesto de falhas parciais. Só a falha de acesso à
// organização é fatal; falhas por conta ou por região são registradas no
// manifesto e a travessia continua.
func (uc *InventoryUseCase) CollectInventory(ctx context.Context, opts CollectOptions) (*entity.InventoryResult, error) {
	roleName := opts.RoleName
	if roleName == "" {
		roleName = DefaultRoleName
	}

	accounts, err := uc.awsRepo.ListOrganizationAccounts(ctx)
	if err != nil {
		return nil, err
	}
	accounts = filterAccounts(accounts, opts.Accounts)
	uc.console.LogDebug("organization has %d account(s) to traverse", len(accounts))
	if opts.OnAccountsListed != nil {
		opts.OnAccountsListed(len(accounts))
	}

	currentDate := uc.now()
	result := &entity.InventoryResult{}

	accountDone := func() {
		if opts.OnAccountDone != nil {
			opts.OnAccountDone()
		}
	}

	if opts.Workers <= 1 {
		for _, acct := range accounts {
			records, failures := uc.collectAccount(ctx, acct, roleName, opts.Regions, currentDate)
			result.Records = append(result.Records, records...)
			result.Failures = append(result.Failures, failures...)
			accountDone()
		}
		return result, nil
	}

	// Extensão opcional: contas em paralelo. Cada worker obtém sua própria
	// credencial delegada; os resultados parciais são concatenados sob mutex —
	// a ordem dos registros é irrelevante por invariante.
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, opts.Workers)
	)
	for _, acct := range accounts {
		wg.Add(1)
		go func(acct entity.Account) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			records, failures := uc.collectAccount(ctx, acct, roleName, opts.Regions, currentDate)

			mu.Lock()
			result.Records = append(result.Records, records...)
			result.Failures = append(result.Failures, failures...)
			mu.Unlock()
			accountDone()
		}(acct)
	}
	wg.Wait()

	return result, nil
}

// collectAccount faz a travessia de uma única conta: assume-role, lista
// regiões, lista funções por região e classifica cada runtime.
func (uc *InventoryUseCase) collectAccount(
	ctx context.Context,
	acct entity.Account,
	roleName string,
	userRegions []string,
	currentDate time.Time,
) ([]entity.FunctionRecord, []entity.AccountFailure) {
	uc.console.LogDebug("assuming role %s in account %s", roleName, acct.ID)
	cred, err := uc.awsRepo.AssumeAccountRole(ctx, acct.ID, roleName)
	if err != nil {
		uc.console.LogWarning("Skipping account %s: %s", acct.ID, err)
		return nil, []entity.AccountFailure{{AccountID: acct.ID, Stage: entity.StageAssumeRole, Error: err.Error()}}
	}

	regions := userRegions
	if len(regions) == 0 {
		regions, err = uc.awsRepo.GetEnabledRegions(ctx, cred)
		if err != nil {
			uc.console.LogWarning("Skipping account %s: %s", acct.ID, err)
			return nil, []entity.AccountFailure{{AccountID: acct.ID, Stage: entity.StageListRegions, Error: err.Error()}}
		}
	}
	uc.console.LogDebug("account %s has %d enabled region(s)", acct.ID, len(regions))

	var (
		records  []entity.FunctionRecord
		failures []entity.AccountFailure
	)
	for _, region := range regions {
		functions, err := uc.awsRepo.ListFunctions(ctx, cred, region)
		if err != nil {
			uc.console.LogWarning("Skipping region %s in account %s: %s", region, acct.ID, err)
			failures = append(failures, entity.AccountFailure{
				AccountID: acct.ID,
				Region:    region,
				Stage:     entity.StageListFunctions,
				Error:     err.Error(),
			})
			continue
		}
		uc.console.LogDebug("account %s region %s: %d function(s)", acct.ID, region, len(functions))

		for _, fn := range functions {
			records = append(records, entity.FunctionRecord{
				AccountID:       acct.ID,
				Region:          region,
				FunctionName:    fn.FunctionName,
				FunctionArn:     fn.FunctionArn,
				Runtime:         fn.Runtime,
				DeprecationInfo: uc.table.Classify(fn.Runtime, currentDate),
			})
		}
	}

	return records, failures
}

// RunInventory é o fluxo da CLI: resolve a configuração, executa a travessia,
// exibe o resultado e exporta os relatórios pedidos.
func (uc *InventoryUseCase) RunInventory(ctx context.Context, args *types.CLIArgs) error {
	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return err
		}
		applyConfigDefaults(args, cfg)
	}
	if args.Debug {
		uc.console.EnableDebug()
	}

	status := uc.console.Status("Listing organization accounts...")

	var progress types.ProgressHandle
	result, err := uc.CollectInventory(ctx, CollectOptions{
		RoleName: args.RoleName,
		Accounts: args.Accounts,
		Regions:  args.Regions,
		Workers:  args.Workers,
		OnAccountsListed: func(total int) {
			if total == 0 {
				status.Update("No accounts matched the requested filters")
				return
			}
			status.Stop()
			progress = uc.console.ProgressWithTotal(total)
		},
		OnAccountDone: func() {
			if progress != nil {
				progress.Increment()
			}
		},
	})
	if err != nil {
		status.Stop()
		return err
	}
	if progress != nil {
		progress.Stop()
	} else {
		status.Stop()
	}

	uc.displayInventory(result)

	if args.ReportName != "" && len(args.ReportType) > 0 {
		for _, reportType := range args.ReportType {
			switch reportType {
			case "csv":
				csvPath, err := uc.exportRepo.ExportToCSV(result, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export to CSV: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
				}
			case "json":
				jsonPath, err := uc.exportRepo.ExportToJSON(result, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export to JSON: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
				}
			case "pdf":
				pdfPath, err := uc.exportRepo.ExportToPDF(result, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export to PDF: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
				}
			default:
				uc.console.LogWarning("Unknown report type: %s", reportType)
			}
		}
	}

	return nil
}

// displayInventory renderiza a tabela de funções, o resumo por runtime e o
// manifesto de contas/regiões puladas.
func (uc *InventoryUseCase) displayInventory(result *entity.InventoryResult) {
	if len(result.Records) == 0 {
		uc.console.LogInfo("No Lambda functions found in the traversed accounts.")
	} else {
		table := uc.console.CreateTable()
		table.AddColumn("Account ID")
		table.AddColumn("Region")
		table.AddColumn("Function Name")
		table.AddColumn("Runtime")
		table.AddColumn("Deprecation Status")
		for _, rec := range result.Records {
			table.AddRow(rec.AccountID, rec.Region, rec.FunctionName, rec.Runtime, rec.DeprecationInfo)
		}
		uc.console.Print(table.Render())

		uc.console.DisplayRuntimeSummary(uc.summarizeRuntimes(result.Records))
	}

	for _, f := range result.Failures {
		if f.Region != "" {
			uc.console.LogWarning("Skipped region %s in account %s (%s): %s", f.Region, f.AccountID, f.Stage, f.Error)
		} else {
			uc.console.LogWarning("Skipped account %s (%s): %s", f.AccountID, f.Stage, f.Error)
		}
	}
	if len(result.Failures) > 0 {
		uc.console.LogWarning("%d account(s)/region(s) were skipped; records for them are absent from the inventory", len(result.Failures))
	}
}

// summarizeRuntimes agrega contagens por runtime para o painel de resumo.
func (uc *InventoryUseCase) summarizeRuntimes(records []entity.FunctionRecord) []types.RuntimeCount {
	byRuntime := make(map[string]*types.RuntimeCount)
	for _, rec := range records {
		if count, ok := byRuntime[rec.Runtime]; ok {
			count.Count++
			continue
		}
		byRuntime[rec.Runtime] = &types.RuntimeCount{
			Runtime:         rec.Runtime,
			Count:           1,
			DeprecationInfo: rec.DeprecationInfo,
		}
	}

	counts := make([]types.RuntimeCount, 0, len(byRuntime))
	for _, count := range byRuntime {
		counts = append(counts, *count)
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Runtime < counts[j].Runtime
	})
	return counts
}

// filterAccounts restringe a lista de contas às pedidas; ids desconhecidos são
// ignorados silenciosamente (a lista da organização é a fonte de verdade).
func filterAccounts(accounts []entity.Account, wanted []string) []entity.Account {
	if len(wanted) == 0 {
		return accounts
	}
	wantedSet := make(map[string]bool, len(wanted))
	for _, id := range wanted {
		wantedSet[id] = true
	}
	filtered := make([]entity.Account, 0, len(wanted))
	for _, acct := range accounts {
		if wantedSet[acct.ID] {
			filtered = append(filtered, acct)
		}
	}
	return filtered
}

// applyConfigDefaults preenche argumentos não informados na CLI com os valores
// do arquivo de configuração; flags explícitas têm precedência.
func applyConfigDefaults(args *types.CLIArgs, cfg *types.Config) {
	if args.RoleName == "" {
		args.RoleName = cfg.RoleName
	}
	if len(args.Accounts) == 0 {
		args.Accounts = cfg.Accounts
	}
	if len(args.Regions) == 0 {
		args.Regions = cfg.Regions
	}
	if args.ReportName == "" {
		args.ReportName = cfg.ReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = cfg.ReportType
	}
	if args.Dir == "" {
		args.Dir = cfg.Dir
	}
	if args.Workers == 0 {
		args.Workers = cfg.Workers
	}
	if cfg.Debug {
		args.Debug = true
	}
}
