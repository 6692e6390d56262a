package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/diillson/aws-lambda-inventory-go/internal/application/usecase"
	"github.com/diillson/aws-lambda-inventory-go/internal/domain/entity"
	"github.com/diillson/aws-lambda-inventory-go/internal/shared/types"
)

// Variável de ambiente reconhecida: liga o trace verboso por passo.
const debugLoggingEnv = "DEBUG_LOGGING"

// Response é o contrato de invocação: status e o inventário serializado como
// array de objetos no corpo.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// InventoryCollector é a operação do orquestrador consumida pelo handler.
type InventoryCollector interface {
	CollectInventory(ctx context.Context, opts usecase.CollectOptions) (*entity.InventoryResult, error)
}

// Handler adapta o orquestrador ao ponto de entrada de invocação Lambda.
type Handler struct {
	collector InventoryCollector
	console   types.ConsoleInterface
}

// New cria um novo Handler.
func New(collector InventoryCollector, console types.ConsoleInterface) *Handler {
	return &Handler{collector: collector, console: console}
}

// Handle executa a travessia completa e devolve a coleção de resultados.
// Só a falha de acesso à organização resulta em invocação com erro; falhas
// por conta ou região aparecem apenas nos logs e no manifesto.
func (h *Handler) Handle(ctx context.Context) (Response, error) {
	if debug, err := strconv.ParseBool(os.Getenv(debugLoggingEnv)); err == nil && debug {
		h.console.EnableDebug()
	}

	result, err := h.collector.CollectInventory(ctx, usecase.CollectOptions{})
	if err != nil {
		h.console.LogError("Inventory run failed: %s", err)
		return Response{}, err
	}

	for _, f := range result.Failures {
		h.console.LogWarning("Skipped %s %s (%s): %s", f.AccountID, f.Region, f.Stage, f.Error)
	}

	records := result.Records
	if records == nil {
		records = []entity.FunctionRecord{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return Response{}, fmt.Errorf("error serializing inventory records: %w", err)
	}

	h.console.LogInfo("Inventory complete: %d function(s), %d skipped account(s)/region(s)", len(records), len(result.Failures))
	return Response{StatusCode: 200, Body: string(body)}, nil
}
