package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/diillson/aws-lambda-inventory-go/internal/application/usecase"
	"github.com/diillson/aws-lambda-inventory-go/internal/domain/entity"
	"github.com/diillson/aws-lambda-inventory-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCollector struct {
	result *entity.InventoryResult
	err    error
}

func (m *mockCollector) CollectInventory(ctx context.Context, opts usecase.CollectOptions) (*entity.InventoryResult, error) {
	return m.result, m.err
}

type silentTable struct{}

func (silentTable) AddColumn(name string, options ...interface{}) {}
func (silentTable) AddRow(cells ...interface{})                   {}
func (silentTable) Render() string                                { return "" }

type silentHandle struct{}

func (silentHandle) Update(message string) {}
func (silentHandle) Increment()            {}
func (silentHandle) Stop()                 {}

type silentConsole struct{}

func (silentConsole) Print(a ...interface{})                            {}
func (silentConsole) Printf(format string, a ...interface{})            {}
func (silentConsole) Println(a ...interface{})                          {}
func (silentConsole) LogInfo(format string, a ...interface{})           {}
func (silentConsole) LogWarning(format string, a ...interface{})        {}
func (silentConsole) LogError(format string, a ...interface{})          {}
func (silentConsole) LogSuccess(format string, a ...interface{})        {}
func (silentConsole) LogDebug(format string, a ...interface{})          {}
func (silentConsole) EnableDebug()                                      {}
func (silentConsole) Status(message string) types.StatusHandle          { return silentHandle{} }
func (silentConsole) ProgressWithTotal(total int) types.ProgressHandle  { return silentHandle{} }
func (silentConsole) CreateTable() types.TableInterface                 { return silentTable{} }
func (silentConsole) DisplayRuntimeSummary(counts []types.RuntimeCount) {}

func TestHandleReturnsSerializedRecords(t *testing.T) {
	collector := &mockCollector{
		result: &entity.InventoryResult{
			Records: []entity.FunctionRecord{
				{
					AccountID:       "111111111111",
					Region:          "us-east-1",
					FunctionName:    "api-handler",
					FunctionArn:     "arn:aws:lambda:us-east-1:111111111111:function:api-handler",
					Runtime:         "nodejs18.x",
					DeprecationInfo: "Will be deprecated on 2025-06-12",
				},
			},
			Failures: []entity.AccountFailure{
				{AccountID: "222222222222", Stage: entity.StageAssumeRole, Error: "AccessDenied"},
			},
		},
	}

	resp, err := New(collector, silentConsole{}).Handle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "111111111111", decoded[0]["AccountId"])
	assert.Equal(t, "nodejs18.x", decoded[0]["Runtime"])
	assert.Equal(t, "Will be deprecated on 2025-06-12", decoded[0]["DeprecationInfo"])
}

func TestHandleEmptyInventoryIsAnEmptyArray(t *testing.T) {
	collector := &mockCollector{result: &entity.InventoryResult{}}

	resp, err := New(collector, silentConsole{}).Handle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, "[]", resp.Body)
}

func TestHandleOrganizationErrorFailsTheInvocation(t *testing.T) {
	collector := &mockCollector{
		err: &types.OrganizationAccessError{Err: errors.New("AccessDeniedException")},
	}

	_, err := New(collector, silentConsole{}).Handle(context.Background())
	var orgErr *types.OrganizationAccessError
	require.ErrorAs(t, err, &orgErr)
}
