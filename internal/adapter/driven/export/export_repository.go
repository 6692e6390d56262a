package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/aws-lambda-inventory-go/internal/domain/entity"
	"github.com/diillson/aws-lambda-inventory-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

var csvHeaders = []string{"AccountId", "Region", "FunctionName", "FunctionArn", "Runtime", "DeprecationInfo"}

// ExportToCSV grava os registros do inventário em CSV. O manifesto de falhas
// vai em um arquivo separado "<nome>_failures" quando há falhas.
func (r *ExportRepositoryImpl) ExportToCSV(result *entity.InventoryResult, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(csvHeaders); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, rec := range result.Records {
		record := []string{rec.AccountID, rec.Region, rec.FunctionName, rec.FunctionArn, rec.Runtime, rec.DeprecationInfo}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	if len(result.Failures) > 0 {
		if err := r.exportFailuresToCSV(result.Failures, filename+"_failures", outputDir); err != nil {
			return "", err
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) exportFailuresToCSV(failures []entity.AccountFailure, filename, outputDir string) error {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return fmt.Errorf("error creating failures CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"AccountId", "Region", "Stage", "Error"})
	for _, f := range failures {
		writer.Write([]string{f.AccountID, f.Region, f.Stage, f.Error})
	}
	return writer.Error()
}

// ExportToJSON grava o resultado completo (registros + manifesto de falhas) em JSON.
func (r *ExportRepositoryImpl) ExportToJSON(result *entity.InventoryResult, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF grava um relatório tabular do inventário em PDF.
func (r *ExportRepositoryImpl) ExportToPDF(result *entity.InventoryResult, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "AWS Lambda Runtime Inventory")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, fmt.Sprintf("Generated at %s", time.Now().UTC().Format(time.RFC3339)))
	pdf.Ln(10)

	colWidths := []float64{28, 24, 55, 95, 28, 47}
	headers := []string{"Account ID", "Region", "Function", "ARN", "Runtime", "Deprecation"}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(50, 50, 50)
	for _, rec := range result.Records {
		cells := []string{rec.AccountID, rec.Region, rec.FunctionName, rec.FunctionArn, rec.Runtime, rec.DeprecationInfo}
		for i, c := range cells {
			pdf.CellFormat(colWidths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(result.Failures) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, "Skipped accounts and regions")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(50, 50, 50)
		for _, f := range result.Failures {
			line := fmt.Sprintf("%s %s [%s]: %s", f.AccountID, f.Region, f.Stage, f.Error)
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename monta "<base>_<timestamp>.<ext>" dentro de outputDir,
// criando o diretório se necessário.
func generateFilename(base, dir, ext string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("report name cannot be empty")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("error creating output directory: %w", err)
		}
	}
	timestamp := time.Now().Format("20060102_1504")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, timestamp, ext)), nil
}
