package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"
)

const (
	headerRow     = 3
	headerFill    = "DDDDDD"
	maxColWidth   = 50.0
	checkColWidth = 8.0
	paperSizeA4   = 9
)

// sheetStyles holds the style IDs registered on one workbook. Style IDs are
// per-file in excelize, so a fresh set is built for every workbook.
type sheetStyles struct {
	title    int
	subtitle int
	header   int
	cell     int
	center   int
	total    int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	}); err != nil {
		return s, err
	}
	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thin,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	}); err != nil {
		return s, err
	}
	if s.cell, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    thin,
	}); err != nil {
		return s, err
	}
	if s.center, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thin,
	}); err != nil {
		return s, err
	}
	if s.total, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return s, err
	}
	return s, nil
}

// displayWidth approximates the rendered width of a cell value: East Asian
// wide and full-width runes count double.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth, width.EastAsianAmbiguous:
			w += 2
		default:
			w++
		}
	}
	return w
}

// applyColumnWidths sets each column's width from the widest observed value,
// scaled and capped the way the picking-list sheets have always rendered.
func applyColumnWidths(f *excelize.File, sheet string, maxWidths map[int]int) error {
	for col, w := range maxWidths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		adjusted := float64(w)*1.2 + 2
		if adjusted > maxColWidth {
			adjusted = maxColWidth
		}
		if err := f.SetColWidth(sheet, name, name, adjusted); err != nil {
			return err
		}
	}
	return nil
}

// applyPageSetup configures A4 portrait printing with the header row
// repeated on every page.
func applyPageSetup(f *excelize.File, sheet string) error {
	orientation := "portrait"
	size := paperSizeA4
	fitToWidth := 1
	if err := f.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		Size:        &size,
		FitToWidth:  &fitToWidth,
	}); err != nil {
		return err
	}

	margin := 0.5
	headerMargin := 0.3
	if err := f.SetPageMargins(sheet, &excelize.PageLayoutMarginsOptions{
		Left:   &margin,
		Right:  &margin,
		Top:    &margin,
		Bottom: &margin,
		Header: &headerMargin,
		Footer: &headerMargin,
	}); err != nil {
		return err
	}

	return f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Titles",
		RefersTo: fmt.Sprintf("'%s'!$%d:$%d", sheet, headerRow, headerRow),
		Scope:    sheet,
	})
}
