package exporter

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"

	"picklist/internal/dataprocessing"
	pkgerrors "picklist/internal/errors"
	"picklist/pkg/contracts/domain"
)

// Workbook file names, one set per input file.
const (
	ProductWorkbook = "1_商品別.xlsx"
	CenterWorkbook  = "2_センター別.xlsx"
	StoreWorkbook   = "3_店舗別.xlsx"
)

const (
	productTitle = "商品別ピッキングリスト"
	centerTitle  = "センター別ピッキングリスト"
	storeTitle   = "店舗別ピッキングリスト"

	productSheetName = "商品別集計"
	checkHeader      = "チェック"
	totalLabel       = "合計"
)

// Renderer writes the aggregated picking lists as styled workbooks. It
// receives pre-sorted, pre-grouped data and computes nothing.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a report renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// sheetData describes one sheet to be laid out: title block, header row,
// data rows, and the optional trailing total row.
type sheetData struct {
	title    string
	subtitle string
	headers  []string
	rows     [][]any
	// hasCheck marks the last column as the manual-check column: fixed
	// width, centered cells.
	hasCheck bool
	// total, when set, appends a bold summary row with the label in the
	// first column and the value under the last column.
	total *float64
}

// WriteProductReport writes the product-level picking list as a single
// sheet workbook.
func (r *Renderer) WriteProductReport(path string, rows []domain.ProductRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", productSheetName); err != nil {
		return renderErr(path, err)
	}

	data := make([][]any, 0, len(rows))
	for _, row := range rows {
		data = append(data, []any{
			row.ProductName, row.ProductCode, row.ColorCode, row.ColorName,
			row.Size, cellNumber(row.TotalUnits), row.Check,
		})
	}

	err := writeSheet(f, productSheetName, sheetData{
		title:    productTitle,
		headers:  []string{"商品名", "品番", "MK_COLOR", "色名", "サイズ", "合計枚数", checkHeader},
		rows:     data,
		hasCheck: true,
	})
	if err != nil {
		return renderErr(path, err)
	}

	return r.save(f, path, 1)
}

// WriteCenterReport writes the center-level picking list: one sheet per
// fulfillment center.
func (r *Renderer) WriteCenterReport(path string, reports []domain.CenterReport) error {
	f := excelize.NewFile()
	defer f.Close()

	names := dataprocessing.NewSheetNamer()
	for i, report := range reports {
		sheet := names.Unique(dataprocessing.SanitizeSheetName(report.CenterName))
		if err := addSheet(f, i, sheet); err != nil {
			return renderErr(path, err)
		}

		data := make([][]any, 0, len(report.Rows))
		for _, row := range report.Rows {
			data = append(data, []any{
				row.ProductName, row.ProductCode, row.ColorCode, row.ColorName,
				row.Size, cellNumber(row.OrderQty),
			})
		}

		err := writeSheet(f, sheet, sheetData{
			title:    centerTitle,
			subtitle: fmt.Sprintf("得意先（センター）名： %s", report.CenterName),
			headers:  []string{"商品名", "品番", "MK_COLOR", "色名", "サイズ", "発注数"},
			rows:     data,
		})
		if err != nil {
			return renderErr(path, err)
		}
	}

	return r.save(f, path, len(reports))
}

// WriteStoreReport writes the store-level picking list: one sheet per
// (store code, store name) pair, each with a trailing total row.
func (r *Renderer) WriteStoreReport(path string, reports []domain.StoreReport) error {
	f := excelize.NewFile()
	defer f.Close()

	names := dataprocessing.NewSheetNamer()
	for i, report := range reports {
		sheet := names.Unique(dataprocessing.StoreSheetName(report.StoreCode, report.StoreName))
		if err := addSheet(f, i, sheet); err != nil {
			return renderErr(path, err)
		}

		data := make([][]any, 0, len(report.Rows))
		for _, row := range report.Rows {
			data = append(data, []any{
				row.ProductName, row.ProductCode, row.ColorName,
				row.Size, cellNumber(row.Quantity),
			})
		}

		total := report.TotalQty
		err := writeSheet(f, sheet, sheetData{
			title: storeTitle,
			subtitle: fmt.Sprintf("得意先（センター）名：%s   店舗：%s %s",
				report.CenterName, report.StoreCode, report.StoreName),
			headers: []string{"商品名", "品番", "色名", "サイズ", "数量"},
			rows:    data,
			total:   &total,
		})
		if err != nil {
			return renderErr(path, err)
		}
	}

	return r.save(f, path, len(reports))
}

func (r *Renderer) save(f *excelize.File, path string, sheets int) error {
	if err := f.SaveAs(path); err != nil {
		return renderErr(path, err)
	}
	r.logger.Info("Report written",
		slog.String("path", path),
		slog.Int("sheets", sheets))
	return nil
}

// addSheet makes sheet the i-th sheet of the workbook, reusing the default
// sheet for the first one.
func addSheet(f *excelize.File, i int, sheet string) error {
	if i == 0 {
		return f.SetSheetName("Sheet1", sheet)
	}
	_, err := f.NewSheet(sheet)
	return err
}

// writeSheet lays out one sheet: title at A1, optional subtitle at A2,
// header row, bordered data region, fitted column widths, print setup, and
// the optional total row.
func writeSheet(f *excelize.File, sheet string, d sheetData) error {
	st, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	if err := setCell(f, sheet, 1, 1, d.title, st.title); err != nil {
		return err
	}
	if d.subtitle != "" {
		if err := setCell(f, sheet, 1, 2, d.subtitle, st.subtitle); err != nil {
			return err
		}
	}

	maxWidths := make(map[int]int, len(d.headers))
	for col, header := range d.headers {
		if err := setCell(f, sheet, col+1, headerRow, header, st.header); err != nil {
			return err
		}
		trackWidth(maxWidths, col+1, header)
	}

	lastCol := len(d.headers)
	checkCol := 0
	if d.hasCheck {
		checkCol = lastCol
	}

	for i, row := range d.rows {
		rowNum := headerRow + 1 + i
		for col, value := range row {
			style := st.cell
			if col+1 == checkCol {
				style = st.center
			}
			if err := setCell(f, sheet, col+1, rowNum, value, style); err != nil {
				return err
			}
			if col+1 != checkCol {
				trackWidth(maxWidths, col+1, fmt.Sprint(value))
			}
		}
	}

	if d.total != nil {
		totalRow := headerRow + 1 + len(d.rows)
		if err := setCell(f, sheet, 1, totalRow, totalLabel, st.total); err != nil {
			return err
		}
		if err := setCell(f, sheet, lastCol, totalRow, cellNumber(*d.total), st.total); err != nil {
			return err
		}
	}

	if err := applyColumnWidths(f, sheet, maxWidths); err != nil {
		return err
	}
	if d.hasCheck {
		name, err := excelize.ColumnNumberToName(checkCol)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, checkColWidth); err != nil {
			return err
		}
	}

	return applyPageSetup(f, sheet)
}

func setCell(f *excelize.File, sheet string, col, row int, value any, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

func trackWidth(maxWidths map[int]int, col int, value string) {
	if w := displayWidth(value); w > maxWidths[col] {
		maxWidths[col] = w
	}
}

// cellNumber writes whole quantities as integers so sheets do not show
// spurious decimal points.
func cellNumber(v float64) any {
	if v == math.Trunc(v) {
		return int64(v)
	}
	return v
}

func renderErr(path string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeRenderFailure,
		fmt.Sprintf("failed to render %s", path), err)
}
