package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"picklist/pkg/contracts/domain"
)

// FactsFile is the optional long-relation dump written next to the reports.
const FactsFile = "facts.csv"

var factsHeaders = []string{
	"納品日", "得意先（センター）名", "品番", "商品名", "MK_COLOR", "色名",
	"サイズ", "JAN", "店舗コード", "店舗名", "数量",
}

// FactsWriter dumps the long relation as CSV for reconciliation against the
// rendered reports.
type FactsWriter struct {
	logger *slog.Logger
}

// NewFactsWriter creates a facts CSV writer.
func NewFactsWriter(logger *slog.Logger) *FactsWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FactsWriter{logger: logger}
}

// WriteFacts writes the facts of one input file. The file carries a UTF-8
// BOM so spreadsheet applications pick the right encoding.
func (w *FactsWriter) WriteFacts(path string, facts []domain.Fact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(factsHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, f := range facts {
		record := []string{
			f.DeliveryDate, f.CenterName, f.ProductCode, f.ProductName,
			f.ColorCode, f.ColorName, f.Size, f.JAN,
			f.StoreCode, f.StoreName,
			strconv.FormatFloat(f.Quantity, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	w.logger.Debug("Facts dump written",
		slog.String("path", path),
		slog.Int("facts", len(facts)))
	return nil
}
