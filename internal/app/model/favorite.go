package model

// FavoriteItem is the denormalized snapshot stored when a product is
// favorited. It is not a live reference to the catalog.
type FavoriteItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Vendor      VendorRef `json:"vendor"`
	Category    string    `json:"category"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Location    string    `json:"location"`
}
