package domain

// Fact is one row of the long relation: the descriptive columns of a single
// input data row joined with one store's ordered quantity. Facts are derived
// during reshaping and never mutated afterwards.
type Fact struct {
	// RowID identifies the originating data row (0-based, counted from the
	// first data row). It makes the unpivot join explicit instead of relying
	// on positional alignment between tables.
	RowID int `json:"row_id"`

	DeliveryDate string `json:"delivery_date"`
	CenterName   string `json:"center_name"`
	ProductCode  string `json:"product_code"`
	ProductName  string `json:"product_name"`
	ColorCode    string `json:"color_code"`
	ColorName    string `json:"color_name"`
	Size         string `json:"size"`
	JAN          string `json:"jan"`

	StoreCode string  `json:"store_code"`
	StoreName string  `json:"store_name"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
}
