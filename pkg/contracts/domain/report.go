package domain

// ProductRow is one aggregated row of the product-level picking list.
type ProductRow struct {
	ProductName string  `json:"product_name"`
	ProductCode string  `json:"product_code"`
	ColorCode   string  `json:"color_code"`
	ColorName   string  `json:"color_name"`
	Size        string  `json:"size"`
	TotalUnits  float64 `json:"total_units"`

	// Check is a manual verification column rendered into the report.
	// It carries no computed value.
	Check string `json:"check"`
}

// CenterRow is one aggregated row of a center-level picking list.
type CenterRow struct {
	CenterName  string  `json:"center_name"`
	ProductName string  `json:"product_name"`
	ProductCode string  `json:"product_code"`
	ColorCode   string  `json:"color_code"`
	ColorName   string  `json:"color_name"`
	Size        string  `json:"size"`
	OrderQty    float64 `json:"order_qty"`
}

// CenterReport holds the sorted rows for one fulfillment center. A center
// with no qualifying facts produces no report.
type CenterReport struct {
	CenterName string      `json:"center_name"`
	Rows       []CenterRow `json:"rows"`
}

// StoreRow is one line of a store-level picking list. Store reports are not
// pre-aggregated; each row corresponds to a single fact.
type StoreRow struct {
	ProductName string  `json:"product_name"`
	ProductCode string  `json:"product_code"`
	ColorName   string  `json:"color_name"`
	Size        string  `json:"size"`
	Quantity    float64 `json:"quantity"`
}

// StoreReport holds the sorted rows for one (store code, store name) pair,
// plus the quantity total rendered as a trailing summary row.
type StoreReport struct {
	StoreCode  string     `json:"store_code"`
	StoreName  string     `json:"store_name"`
	CenterName string     `json:"center_name"`
	Rows       []StoreRow `json:"rows"`
	TotalQty   float64    `json:"total_qty"`
}
