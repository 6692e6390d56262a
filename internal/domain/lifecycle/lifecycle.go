// Package lifecycle carrega a tabela de ciclo de vida dos runtimes Lambda e
// classifica o estado de deprecation de um runtime em uma data.
package lifecycle

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/diillson/aws-lambda-inventory-go/internal/domain/entity"
	"github.com/pelletier/go-toml"
)

const dateLayout = "2006-01-02"

// Marcador usado na tabela para runtimes sem data de deprecation publicada.
const noScheduledDate = "N/A"

// Textos de classificação fixos. Os casos com data são formatados em Classify.
const (
	StatusNotApplicable  = "Not applicable"
	StatusUnknownRuntime = "No deprecation information available"
	StatusNoSchedule     = "No scheduled deprecation"
)

// Entry é o registro imutável de ciclo de vida de um runtime.
// DeprecationDate nil significa que não há deprecation agendada.
type Entry struct {
	DeprecationDate *time.Time
}

// Table mapeia identificadores de runtime para seus marcos de deprecation.
// Carregada uma vez, nunca mutada durante a execução.
type Table map[string]Entry

//go:embed runtimes.toml
var embeddedTable []byte

// Load analisa uma tabela de ciclo de vida no formato TOML.
func Load(data []byte) (Table, error) {
	var raw struct {
		Runtimes map[string]string `toml:"runtimes"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing runtime lifecycle table: %w", err)
	}

	table := make(Table, len(raw.Runtimes))
	for runtime, date := range raw.Runtimes {
		if date == noScheduledDate {
			table[runtime] = Entry{}
			continue
		}
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("invalid deprecation date %q for runtime %s: %w", date, runtime, err)
		}
		parsed = parsed.UTC()
		table[runtime] = Entry{DeprecationDate: &parsed}
	}
	return table, nil
}

var (
	defaultOnce  sync.Once
	defaultTable Table
)

// Default retorna a tabela embutida no binário.
func Default() Table {
	defaultOnce.Do(func() {
		table, err := Load(embeddedTable)
		if err != nil {
			// A tabela embutida faz parte do binário; se não parseia, o build está quebrado.
			panic(fmt.Sprintf("embedded runtime lifecycle table: %v", err))
		}
		defaultTable = table
	})
	return defaultTable
}

// Classify retorna o estado de deprecation de um runtime na data informada.
// É total: runtimes desconhecidos e o sentinel de "sem runtime" degradam para
// textos fixos, nunca para erro. A própria data de deprecation já conta como
// deprecated — é a partir dela que criação/atualização de funções é bloqueada.
func (t Table) Classify(runtime string, now time.Time) string {
	if runtime == "" || runtime == entity.RuntimeNotApplicable {
		return StatusNotApplicable
	}

	entry, ok := t[runtime]
	if !ok {
		return StatusUnknownRuntime
	}
	if entry.DeprecationDate == nil {
		return StatusNoSchedule
	}

	day := now.UTC()
	today := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	date := entry.DeprecationDate.Format(dateLayout)
	if !today.Before(*entry.DeprecationDate) {
		return fmt.Sprintf("Deprecated since %s", date)
	}
	return fmt.Sprintf("Will be deprecated on %s", date)
}
