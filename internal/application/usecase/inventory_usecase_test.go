package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/diillson/aws-lambda-inventory-go/internal/domain/entity"
	"github.com/diillson/aws-lambda-inventory-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAWSRepo struct {
	accounts      []entity.Account
	accountsErr   error
	assumeFunc    func(accountID string) (entity.DelegatedCredential, error)
	regionsFunc   func(cred entity.DelegatedCredential) ([]string, error)
	functionsFunc func(cred entity.DelegatedCredential, region string) ([]entity.FunctionConfiguration, error)

	regionCalls int32
}

func (m *mockAWSRepo) ListOrganizationAccounts(ctx context.Context) ([]entity.Account, error) {
	if m.accountsErr != nil {
		return nil, m.accountsErr
	}
	return m.accounts, nil
}

func (m *mockAWSRepo) AssumeAccountRole(ctx context.Context, accountID, roleName string) (entity.DelegatedCredential, error) {
	return m.assumeFunc(accountID)
}

func (m *mockAWSRepo) GetEnabledRegions(ctx context.Context, cred entity.DelegatedCredential) ([]string, error) {
	atomic.AddInt32(&m.regionCalls, 1)
	return m.regionsFunc(cred)
}

func (m *mockAWSRepo) ListFunctions(ctx context.Context, cred entity.DelegatedCredential, region string) ([]entity.FunctionConfiguration, error) {
	return m.functionsFunc(cred, region)
}

type noopTable struct{}

func (noopTable) AddColumn(name string, options ...interface{}) {}
func (noopTable) AddRow(cells ...interface{})                   {}
func (noopTable) Render() string                                { return "" }

type noopHandle struct{}

func (noopHandle) Update(message string) {}
func (noopHandle) Increment()            {}
func (noopHandle) Stop()                 {}

type noopConsole struct{}

func (noopConsole) Print(a ...interface{})                           {}
func (noopConsole) Printf(format string, a ...interface{})           {}
func (noopConsole) Println(a ...interface{})                         {}
func (noopConsole) LogInfo(format string, a ...interface{})          {}
func (noopConsole) LogWarning(format string, a ...interface{})       {}
func (noopConsole) LogError(format string, a ...interface{})         {}
func (noopConsole) LogSuccess(format string, a ...interface{})       {}
func (noopConsole) LogDebug(format string, a ...interface{})         {}
func (noopConsole) EnableDebug()                                     {}
func (noopConsole) Status(message string) types.StatusHandle         { return noopHandle{} }
func (noopConsole) ProgressWithTotal(total int) types.ProgressHandle { return noopHandle{} }
func (noopConsole) CreateTable() types.TableInterface                { return noopTable{} }
func (noopConsole) DisplayRuntimeSummary(counts []types.RuntimeCount) {
}

func newTestUseCase(repo *mockAWSRepo) *InventoryUseCase {
	uc := NewInventoryUseCase(repo, nil, nil, noopConsole{})
	uc.now = func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return uc
}

func goodCred(accountID string) (entity.DelegatedCredential, error) {
	return entity.DelegatedCredential{AccountID: accountID, AccessKeyID: "AKIA" + accountID}, nil
}

// Cenário do exemplo ponta a ponta: duas contas, assume-role falha na segunda,
// a primeira tem uma função nodejs18.x em us-east-1, data corrente 2024-01-01.
func twoAccountRepo() *mockAWSRepo {
	return &mockAWSRepo{
		accounts: []entity.Account{
			{ID: "111111111111", Status: "ACTIVE"},
			{ID: "222222222222", Status: "ACTIVE"},
		},
		assumeFunc: func(accountID string) (entity.DelegatedCredential, error) {
			if accountID == "222222222222" {
				return entity.DelegatedCredential{}, &types.AssumeRoleError{AccountID: accountID, Err: errors.New("AccessDenied")}
			}
			return goodCred(accountID)
		},
		regionsFunc: func(cred entity.DelegatedCredential) ([]string, error) {
			return []string{"us-east-1"}, nil
		},
		functionsFunc: func(cred entity.DelegatedCredential, region string) ([]entity.FunctionConfiguration, error) {
			return []entity.FunctionConfiguration{
				{
					FunctionName: "api-handler",
					FunctionArn:  "arn:aws:lambda:us-east-1:111111111111:function:api-handler",
					Runtime:      "nodejs18.x",
				},
			}, nil
		},
	}
}

func TestCollectInventoryFaultIsolation(t *testing.T) {
	uc := newTestUseCase(twoAccountRepo())

	result, err := uc.CollectInventory(context.Background(), CollectOptions{})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "111111111111", rec.AccountID)
	assert.Equal(t, "us-east-1", rec.Region)
	assert.Equal(t, "api-handler", rec.FunctionName)
	assert.Equal(t, "nodejs18.x", rec.Runtime)
	assert.Equal(t, "Will be deprecated on 2025-06-12", rec.DeprecationInfo)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "222222222222", result.Failures[0].AccountID)
	assert.Equal(t, entity.StageAssumeRole, result.Failures[0].Stage)
}

func TestCollectInventoryOrganizationErrorIsFatal(t *testing.T) {
	uc := newTestUseCase(&mockAWSRepo{
		accountsErr: &types.OrganizationAccessError{Err: errors.New("AccessDeniedException")},
	})

	_, err := uc.CollectInventory(context.Background(), CollectOptions{})
	var orgErr *types.OrganizationAccessError
	require.ErrorAs(t, err, &orgErr)
}

func TestCollectInventoryRegionFailureSkipsOnlyThatRegion(t *testing.T) {
	repo := twoAccountRepo()
	repo.accounts = repo.accounts[:1]
	repo.regionsFunc = func(cred entity.DelegatedCredential) ([]string, error) {
		return []string{"us-east-1", "sa-east-1"}, nil
	}
	repo.functionsFunc = func(cred entity.DelegatedCredential, region string) ([]entity.FunctionConfiguration, error) {
		if region == "sa-east-1" {
			return nil, &types.FunctionListError{AccountID: cred.AccountID, Region: region, Err: errors.New("throttled")}
		}
		return []entity.FunctionConfiguration{
			{FunctionName: "fn", FunctionArn: "arn:fn", Runtime: "python3.12"},
		}, nil
	}
	uc := newTestUseCase(repo)

	result, err := uc.CollectInventory(context.Background(), CollectOptions{})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "us-east-1", result.Records[0].Region)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "sa-east-1", result.Failures[0].Region)
	assert.Equal(t, entity.StageListFunctions, result.Failures[0].Stage)
}

func TestCollectInventoryRegionListFailureSkipsAccount(t *testing.T) {
	repo := twoAccountRepo()
	repo.regionsFunc = func(cred entity.DelegatedCredential) ([]string, error) {
		return nil, &types.RegionListError{AccountID: cred.AccountID, Err: errors.New("UnauthorizedOperation")}
	}
	uc := newTestUseCase(repo)

	result, err := uc.CollectInventory(context.Background(), CollectOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	require.Len(t, result.Failures, 2)
}

func TestCollectInventoryUserRegionsBypassRegionLister(t *testing.T) {
	repo := twoAccountRepo()
	uc := newTestUseCase(repo)

	result, err := uc.CollectInventory(context.Background(), CollectOptions{Regions: []string{"us-east-1"}})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, int32(0), repo.regionCalls)
}

func TestCollectInventoryNoRuntimeSentinel(t *testing.T) {
	repo := twoAccountRepo()
	repo.accounts = repo.accounts[:1]
	repo.functionsFunc = func(cred entity.DelegatedCredential, region string) ([]entity.FunctionConfiguration, error) {
		return []entity.FunctionConfiguration{
			{FunctionName: "image-fn", FunctionArn: "arn:image-fn", Runtime: entity.RuntimeNotApplicable},
		}, nil
	}
	uc := newTestUseCase(repo)

	result, err := uc.CollectInventory(context.Background(), CollectOptions{})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, entity.RuntimeNotApplicable, result.Records[0].Runtime)
	assert.Equal(t, "Not applicable", result.Records[0].DeprecationInfo)
}

func TestCollectInventoryIdempotentAsSet(t *testing.T) {
	uc := newTestUseCase(twoAccountRepo())

	first, err := uc.CollectInventory(context.Background(), CollectOptions{})
	require.NoError(t, err)
	second, err := uc.CollectInventory(context.Background(), CollectOptions{})
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Records, second.Records)
	assert.ElementsMatch(t, first.Failures, second.Failures)
}

func TestCollectInventoryParallelMatchesSequential(t *testing.T) {
	repo := &mockAWSRepo{
		accounts: []entity.Account{
			{ID: "111111111111"}, {ID: "222222222222"}, {ID: "333333333333"}, {ID: "444444444444"},
		},
		assumeFunc: goodCred,
		regionsFunc: func(cred entity.DelegatedCredential) ([]string, error) {
			return []string{"us-east-1", "eu-west-1"}, nil
		},
		functionsFunc: func(cred entity.DelegatedCredential, region string) ([]entity.FunctionConfiguration, error) {
			return []entity.FunctionConfiguration{
				{FunctionName: "fn-" + region, FunctionArn: "arn:" + cred.AccountID + ":" + region, Runtime: "go1.x"},
			}, nil
		},
	}
	uc := newTestUseCase(repo)

	sequential, err := uc.CollectInventory(context.Background(), CollectOptions{Workers: 1})
	require.NoError(t, err)
	parallel, err := uc.CollectInventory(context.Background(), CollectOptions{Workers: 4})
	require.NoError(t, err)

	require.Len(t, parallel.Records, 8)
	assert.ElementsMatch(t, sequential.Records, parallel.Records)
}

func TestCollectInventoryAccountFilter(t *testing.T) {
	uc := newTestUseCase(twoAccountRepo())

	result, err := uc.CollectInventory(context.Background(), CollectOptions{Accounts: []string{"111111111111"}})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Empty(t, result.Failures)
}

func TestCollectInventoryProgressCallback(t *testing.T) {
	uc := newTestUseCase(twoAccountRepo())

	var listed int
	var done int32
	_, err := uc.CollectInventory(context.Background(), CollectOptions{
		OnAccountsListed: func(total int) { listed = total },
		OnAccountDone:    func() { atomic.AddInt32(&done, 1) },
	})
	require.NoError(t, err)
	assert.Equal(t, 2, listed)
	assert.Equal(t, int32(2), done)
}

func TestSummarizeRuntimes(t *testing.T) {
	uc := newTestUseCase(&mockAWSRepo{})
	counts := uc.summarizeRuntimes([]entity.FunctionRecord{
		{Runtime: "nodejs18.x", DeprecationInfo: "Will be deprecated on 2025-06-12"},
		{Runtime: "nodejs18.x", DeprecationInfo: "Will be deprecated on 2025-06-12"},
		{Runtime: "python2.7", DeprecationInfo: "Deprecated since 2021-07-15"},
	})

	require.Len(t, counts, 2)
	assert.Equal(t, "nodejs18.x", counts[0].Runtime)
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, "python2.7", counts[1].Runtime)
}

func TestApplyConfigDefaultsPrecedence(t *testing.T) {
	args := &types.CLIArgs{RoleName: "FromFlag"}
	applyConfigDefaults(args, &types.Config{
		RoleName: "FromFile",
		Regions:  []string{"eu-west-1"},
		Workers:  8,
		Debug:    true,
	})

	assert.Equal(t, "FromFlag", args.RoleName)
	assert.Equal(t, []string{"eu-west-1"}, args.Regions)
	assert.Equal(t, 8, args.Workers)
	assert.True(t, args.Debug)
}
