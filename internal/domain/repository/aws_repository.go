package repository

import (
	"context"

	"github.com/diillson/aws-lambda-inventory-go/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
// Todas as operações paginadas consomem as páginas internamente e devolvem uma
// sequência única — o chamador nunca lida com tokens de continuação.
type AWSRepository interface {
	// Organization Operations
	ListOrganizationAccounts(ctx context.Context) ([]entity.Account, error)

	// Credential Delegation
	AssumeAccountRole(ctx context.Context, accountID, roleName string) (entity.DelegatedCredential, error)

	// Region Operations
	GetEnabledRegions(ctx context.Context, cred entity.DelegatedCredential) ([]string, error)

	// Function Operations
	ListFunctions(ctx context.Context, cred entity.DelegatedCredential, region string) ([]entity.FunctionConfiguration, error)
}
