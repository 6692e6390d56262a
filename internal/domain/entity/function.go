package entity

// RuntimeNotApplicable é o sentinel para funções sem identificador de runtime
// (ex.: empacotadas como imagem de container).
const RuntimeNotApplicable = "N/A"

// FunctionConfiguration é a configuração mínima de uma função retornada pelo
// enumerador: nome, ARN e runtime. Runtime nunca fica vazio — funções sem
// runtime carregam o sentinel RuntimeNotApplicable.
type FunctionConfiguration struct {
	FunctionName string `json:"function_name"`
	FunctionArn  string `json:"function_arn"`
	Runtime      string `json:"runtime"`
}

// FunctionRecord é a entidade de resultado: uma função descoberta, anotada com
// a classificação de deprecation do seu runtime. Imutável após construída.
type FunctionRecord struct {
	AccountID       string `json:"AccountId"`
	Region          string `json:"Region"`
	FunctionName    string `json:"FunctionName"`
	FunctionArn     string `json:"FunctionArn"`
	Runtime         string `json:"Runtime"`
	DeprecationInfo string `json:"DeprecationInfo"`
}

// Estágios da travessia em que uma falha recuperável pode ocorrer.
const (
	StageAssumeRole    = "assume-role"
	StageListRegions   = "list-regions"
	StageListFunctions = "list-functions"
)

// AccountFailure registra uma conta (ou região) pulada durante a travessia,
// com contexto suficiente para agir: conta, região (quando aplicável), estágio
// e causa.
type AccountFailure struct {
	AccountID string `json:"account_id"`
	Region    string `json:"region,omitempty"`
	Stage     string `json:"stage"`
	Error     string `json:"error"`
}

// InventoryResult é a coleção de resultados de uma execução: os registros
// descobertos mais o manifesto de falhas parciais.
type InventoryResult struct {
	Records  []FunctionRecord `json:"records"`
	Failures []AccountFailure `json:"failures,omitempty"`
}
