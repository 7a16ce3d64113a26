package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"

	"picklist/internal/config"
	pkgerrors "picklist/internal/errors"
	"picklist/pkg/contracts/domain"
)

// RawTable is an untyped rectangular grid of cells. Row 0 holds store
// metadata for the block region; rows at and after the layout's data-start
// row hold data. Rows may be ragged; out-of-range cells read as empty.
type RawTable [][]string

// Width returns the column count of the table, taken as the widest row.
func (t RawTable) Width() int {
	width := 0
	for _, row := range t {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Cell returns the cell at (row, col) as stored, or "" when the position is
// outside the table. Callers trim where they need to.
func (t RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t) {
		return ""
	}
	if col < 0 || col >= len(t[row]) {
		return ""
	}
	return t[row][col]
}

// StoreBlock describes one repeating 3-column unit (code, name, quantity)
// found during the block scan.
type StoreBlock struct {
	StartCol  int
	StoreCode string
	StoreName string
}

// Reshaper unpivots the wide store-block region of a raw table into the
// long relation of Facts.
type Reshaper struct {
	layout config.Layout
	sizes  *SizeNormalizer
	logger *slog.Logger
}

// NewReshaper constructs a reshaper for one input format version.
func NewReshaper(layout config.Layout, sizes *SizeNormalizer, logger *slog.Logger) *Reshaper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reshaper{layout: layout, sizes: sizes, logger: logger}
}

// ScanStoreBlocks walks the wide region of the table from the configured
// start column in steps of 3 and returns the store blocks before the stop
// marker. The scan ends when fewer than 3 columns remain or the block's
// header cell (store-info row) contains the stop keyword.
func (r *Reshaper) ScanStoreBlocks(table RawTable) []StoreBlock {
	var blocks []StoreBlock
	width := table.Width()
	for col := r.layout.StoreStartCol; col+2 < width; col += 3 {
		header := table.Cell(r.layout.StoreInfoRow, col)
		if strings.Contains(header, r.layout.StopKeyword) {
			break
		}
		blocks = append(blocks, StoreBlock{
			StartCol:  col,
			StoreCode: strings.TrimSpace(table.Cell(r.layout.DataStartRow, col)),
			StoreName: strings.TrimSpace(table.Cell(r.layout.DataStartRow, col+1)),
		})
	}
	return blocks
}

// Reshape validates the table's shape, scans the store blocks, and unpivots
// them into Facts with normalized size labels. It returns ErrMalformedInput
// when the column count is at or below the layout threshold and
// ErrNoUsableData when no block yields a positive quantity. Both are
// recoverable per-file conditions.
func (r *Reshaper) Reshape(table RawTable) ([]domain.Fact, error) {
	width := table.Width()
	if width < r.layout.MinColumns {
		return nil, pkgerrors.Newf(pkgerrors.CodeMalformedInput,
			"table has %d columns, need at least %d", width, r.layout.MinColumns)
	}

	blocks := r.ScanStoreBlocks(table)
	r.logger.Debug("Store block scan complete",
		slog.Int("blocks", len(blocks)),
		slog.Int("columns", width))

	facts := r.unpivot(table, blocks)
	if len(facts) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoUsableData,
			"no store block contains a positive quantity")
	}

	for i := range facts {
		facts[i].Size = r.sizes.Normalize(facts[i].Size)
	}
	return facts, nil
}

// unpivot emits one Fact per (store block, data row) pair with a positive
// quantity, block-major, joining the row's descriptive columns with the
// block's store identity. The originating row index is carried explicitly
// on every Fact.
func (r *Reshaper) unpivot(table RawTable, blocks []StoreBlock) []domain.Fact {
	var facts []domain.Fact
	for _, block := range blocks {
		for row := r.layout.DataStartRow; row < len(table); row++ {
			qty := coerceQuantity(table.Cell(row, block.StartCol+2))
			if qty <= 0 {
				continue
			}
			facts = append(facts, domain.Fact{
				RowID:        row - r.layout.DataStartRow,
				DeliveryDate: table.Cell(row, r.layout.DeliveryDateCol),
				CenterName:   table.Cell(row, r.layout.CenterNameCol),
				ProductCode:  table.Cell(row, r.layout.ProductCodeCol),
				ProductName:  table.Cell(row, r.layout.ProductNameCol),
				ColorCode:    table.Cell(row, r.layout.ColorCodeCol),
				ColorName:    table.Cell(row, r.layout.ColorNameCol),
				Size:         table.Cell(row, r.layout.SizeCol),
				JAN:          table.Cell(row, r.layout.JANCol),
				StoreCode:    block.StoreCode,
				StoreName:    block.StoreName,
				Quantity:     qty,
			})
		}
	}
	return facts
}

// coerceQuantity converts a quantity cell to a number. Thousands separators
// are tolerated; non-numeric or missing values coerce to zero.
func coerceQuantity(cell string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "" {
		return 0
	}
	qty, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return qty
}
