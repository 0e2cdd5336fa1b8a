package model

// Client is one row of the CLIENTES sheet. OldID is the legacy COD_CLI code
// and stays the natural key of the downstream client table.
type Client struct {
	OldID   int     `json:"old_id"`
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Type    string  `json:"type"`
	Address *string `json:"address"`
}

// Product is one row of ARTICULOS TECNO, keyed by SKU. Price tiers keep
// their sheet names (LP1..LP3) because the loader matches on them.
type Product struct {
	SKU              string  `json:"sku"`
	Name             string  `json:"name"`
	ColorGrade       *string `json:"color_grade"`
	Type             string  `json:"type"`
	Model            *string `json:"model"`
	Brand            *string `json:"brand"`
	Weight           float64 `json:"weight"`
	Volume           float64 `json:"volum"`
	Status           string  `json:"status"`
	LastPurchaseCost float64 `json:"last_purchase_cost"`
	Active           bool    `json:"active"`
	Webpage          string  `json:"webpage"`
	LP1              float64 `json:"lp1"`
	LP2              float64 `json:"lp2"`
	LP3              float64 `json:"lp3"`
	Stock            int     `json:"stock"`
}

// Supplier comes from the optional PROVEEDORES sheet. Address is the
// city/state/country triple joined, empty parts elided.
type Supplier struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderItem is one DETA_VENTAS line. It only exists inside its parent
// Order; ShipmentNumber links the line to a Shipment when present.
type OrderItem struct {
	SKU             *string `json:"sku"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	UnitCost        float64 `json:"unit_cost"`
	Profit          float64 `json:"profit"`
	ProductName     *string `json:"product_name"`
	ShipmentNumber  *int    `json:"shipment_number"`
	Status          Status  `json:"status"`
	SupplierName    *string `json:"supplier_name"`
	PurchaseInvoice *string `json:"purchase_invoice"`
}

// Order is an assembled CABE_VENTAS row with its DETA_VENTAS lines.
// Exactly one of ClientOldID / ClientNameMatch is set: the source encodes
// the client either as the legacy code or as free text.
type Order struct {
	OrderNumber     int          `json:"order_number"`
	ClientOldID     *int         `json:"client_old_id"`
	ClientNameMatch *string      `json:"client_name_match"`
	Date            *string      `json:"date"`
	TotalAmount     float64      `json:"total_amount"`
	PaymentAmount   float64      `json:"payment_amount"`
	PaymentMethod   *string      `json:"payment_method"`
	Status          Status       `json:"status"`
	Items           []*OrderItem `json:"items"`
	ShipmentNumber  *int         `json:"shipment_number"`
}

// Shipment is one CABE_ENVIOS row. ShipmentNumber is required and non-zero;
// rows numbered 0 are placeholder lines in the sheet.
type Shipment struct {
	ShipmentNumber  int     `json:"shipment_number"`
	OldClientID     *int    `json:"old_client_id"`
	Forwarder       *string `json:"forwarder"`
	DateShipped     *string `json:"date_shipped"`
	DateArrived     *string `json:"date_arrived"`
	WeightForwarder float64 `json:"weight_fw"`
	WeightClient    float64 `json:"weight_cli"`
	TypeLoad        *string `json:"type_load"`
	ItemCount       int     `json:"item_count"`
	Status          Status  `json:"status"`
	Notes           *string `json:"notes"`
	Invoice         *string `json:"invoice"`
	IsPaid          bool    `json:"is_paid"`
	PriceTotal      float64 `json:"price_total"`
	CostTotal       float64 `json:"cost_total"`
	Profit          float64 `json:"profit"`
}
