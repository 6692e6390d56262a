package entity

import "time"

// Account representa uma conta membro da organização.
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status,omitempty"`
}

// DelegatedCredential são credenciais temporárias obtidas via assume-role,
// escopadas a uma única conta. Nunca são reutilizadas entre contas; a expiração
// é o único limite de ciclo de vida (não há revogação explícita).
type DelegatedCredential struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      time.Time
}
