package types

import "fmt"

// OrganizationAccessError indica que a identidade de execução não consegue
// listar as contas da organização. É fatal para a execução inteira.
type OrganizationAccessError struct {
	Err error
}

func (e *OrganizationAccessError) Error() string {
	return fmt.Sprintf("cannot list organization accounts: %v", e.Err)
}

func (e *OrganizationAccessError) Unwrap() error { return e.Err }

// AssumeRoleError indica falha ao assumir a role em uma conta membro.
// Não-fatal: a conta é pulada e a travessia continua.
type AssumeRoleError struct {
	AccountID string
	Err       error
}

func (e *AssumeRoleError) Error() string {
	return fmt.Sprintf("cannot assume role in account %s: %v", e.AccountID, e.Err)
}

func (e *AssumeRoleError) Unwrap() error { return e.Err }

// RegionListError indica falha ao listar as regiões habilitadas de uma conta.
// Não-fatal: a conta é pulada e a travessia continua.
type RegionListError struct {
	AccountID string
	Err       error
}

func (e *RegionListError) Error() string {
	return fmt.Sprintf("cannot list enabled regions for account %s: %v", e.AccountID, e.Err)
}

func (e *RegionListError) Unwrap() error { return e.Err }

// FunctionListError indica falha ao listar funções em uma (conta, região).
// Não-fatal: a região é pulada e a travessia continua.
type FunctionListError struct {
	AccountID string
	Region    string
	Err       error
}

func (e *FunctionListError) Error() string {
	return fmt.Sprintf("cannot list functions in account %s region %s: %v", e.AccountID, e.Region, e.Err)
}

func (e *FunctionListError) Unwrap() error { return e.Err }
