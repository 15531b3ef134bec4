package model

// CartLine is one product/quantity pair in a cart. Name, price and
// image are snapshots taken when the product was first added.
type CartLine struct {
	ProductID   string    `json:"product_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Vendor      VendorRef `json:"vendor"`
	Quantity    int       `json:"quantity"`
	MaxQuantity *int      `json:"max_quantity,omitempty"`
}
