package repository

import (
	"github.com/diillson/aws-lambda-inventory-go/internal/domain/entity"
)

// ExportRepository defines the interface for exporting inventory reports.
type ExportRepository interface {
	ExportToCSV(result *entity.InventoryResult, filename, outputDir string) (string, error)
	ExportToJSON(result *entity.InventoryResult, filename, outputDir string) (string, error)
	ExportToPDF(result *entity.InventoryResult, filename, outputDir string) (string, error)
}
