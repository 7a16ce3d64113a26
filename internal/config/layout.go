package config

import "fmt"

// Layout describes the positional contract of one input format version:
// which columns hold the descriptive fields, where the repeating store
// blocks begin, and how the size dimension is ordered. The input format is
// a contract, not inferred from headers, so the indices live in explicit
// configuration rather than header matching. Multiple layouts can run side
// by side by constructing reshapers with different values.
type Layout struct {
	// Descriptive column indices (0-based), applied to every data row.
	DeliveryDateCol int `yaml:"delivery_date_col" envconfig:"DELIVERY_DATE_COL"`
	CenterNameCol   int `yaml:"center_name_col" envconfig:"CENTER_NAME_COL"`
	ProductCodeCol  int `yaml:"product_code_col" envconfig:"PRODUCT_CODE_COL"`
	ProductNameCol  int `yaml:"product_name_col" envconfig:"PRODUCT_NAME_COL"`
	ColorCodeCol    int `yaml:"color_code_col" envconfig:"COLOR_CODE_COL"`
	ColorNameCol    int `yaml:"color_name_col" envconfig:"COLOR_NAME_COL"`
	SizeCol         int `yaml:"size_col" envconfig:"SIZE_COL"`
	JANCol          int `yaml:"jan_col" envconfig:"JAN_COL"`

	// StoreStartCol is where the repeating 3-column store blocks
	// (code, name, quantity) begin.
	StoreStartCol int `yaml:"store_start_col" envconfig:"STORE_START_COL"`

	// StoreInfoRow holds store metadata for the block region; DataStartRow
	// is the first data row.
	StoreInfoRow int `yaml:"store_info_row" envconfig:"STORE_INFO_ROW"`
	DataStartRow int `yaml:"data_start_row" envconfig:"DATA_START_ROW"`

	// MinColumns is the structural threshold: tables with at most this many
	// columns are rejected as malformed.
	MinColumns int `yaml:"min_columns" envconfig:"MIN_COLUMNS"`

	// StopKeyword ends the store-block scan when it appears in a block's
	// header cell.
	StopKeyword string `yaml:"stop_keyword" envconfig:"STOP_KEYWORD"`

	// SizeOrder is the priority order of known size tokens; labels not in
	// the list sort after every known size.
	SizeOrder []string `yaml:"size_order" envconfig:"SIZE_ORDER"`
}

// DefaultLayout returns the layout of the standard picking-list export.
func DefaultLayout() Layout {
	return Layout{
		DeliveryDateCol: 3,  // D
		CenterNameCol:   8,  // I
		ProductCodeCol:  14, // O
		ProductNameCol:  15, // P
		ColorCodeCol:    21, // V
		ColorNameCol:    23, // X
		SizeCol:         25, // Z
		JANCol:          16, // Q
		StoreStartCol:   37,
		StoreInfoRow:    0,
		DataStartRow:    1,
		MinColumns:      27,
		StopKeyword:     "伝票枝番",
		SizeOrder: []string{
			"XS", "SS", "S", "M", "L", "LL", "XL",
			"3L", "4L", "5L",
			"FREE", "F", "Free", "OneSize",
		},
	}
}

// Validate checks that the layout is internally consistent.
func (l Layout) Validate() error {
	cols := map[string]int{
		"delivery_date_col": l.DeliveryDateCol,
		"center_name_col":   l.CenterNameCol,
		"product_code_col":  l.ProductCodeCol,
		"product_name_col":  l.ProductNameCol,
		"color_code_col":    l.ColorCodeCol,
		"color_name_col":    l.ColorNameCol,
		"size_col":          l.SizeCol,
		"jan_col":           l.JANCol,
	}
	for name, idx := range cols {
		if idx < 0 {
			return fmt.Errorf("layout: %s must not be negative, got %d", name, idx)
		}
		if idx >= l.MinColumns {
			return fmt.Errorf("layout: %s (%d) outside the guaranteed column range (min_columns=%d)", name, idx, l.MinColumns)
		}
	}
	if l.StoreStartCol < l.MinColumns {
		return fmt.Errorf("layout: store_start_col (%d) overlaps the descriptive column range", l.StoreStartCol)
	}
	if l.DataStartRow <= l.StoreInfoRow {
		return fmt.Errorf("layout: data_start_row (%d) must come after store_info_row (%d)", l.DataStartRow, l.StoreInfoRow)
	}
	if l.StopKeyword == "" {
		return fmt.Errorf("layout: stop_keyword must not be empty")
	}
	if len(l.SizeOrder) == 0 {
		return fmt.Errorf("layout: size_order must not be empty")
	}
	return nil
}

// isZero reports whether the layout was left entirely unset, in which case
// Load substitutes DefaultLayout.
func (l Layout) isZero() bool {
	return l.MinColumns == 0 && l.StopKeyword == "" && len(l.SizeOrder) == 0
}
