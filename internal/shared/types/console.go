package types

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})
	LogDebug(format string, a ...interface{})

	// EnableDebug liga a saída das mensagens de debug; sem ela, LogDebug é
	// silencioso.
	EnableDebug()

	Status(message string) StatusHandle
	ProgressWithTotal(total int) ProgressHandle

	CreateTable() TableInterface
	DisplayRuntimeSummary(counts []RuntimeCount)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// ProgressHandle é uma interface para atualizar uma barra de progresso.
type ProgressHandle interface {
	Increment()
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// RuntimeCount agrega quantas funções usam um runtime e qual o estado de
// deprecation dele, usado no painel de resumo por runtime.
type RuntimeCount struct {
	Runtime         string `json:"runtime"`
	Count           int    `json:"count"`
	DeprecationInfo string `json:"deprecation_info"`
}
