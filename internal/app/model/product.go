package model

import (
	"encoding/json"
	"time"
)

// Specification is one ordered key/value entry of a product's spec sheet.
type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Product struct {
	ID            string          `gorm:"primarykey;size:100" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         float64         `gorm:"not null" json:"price"`
	ComparePrice  *float64        `json:"compare_price,omitempty"`
	Images        []string        `gorm:"serializer:json" json:"images"`
	Category      string          `gorm:"size:100;index" json:"category"`
	Subcategory   string          `gorm:"size:100" json:"subcategory"`
	VendorID      string          `gorm:"size:100;index" json:"vendor_id"`
	Rating        float64         `json:"rating"`
	ReviewCount   int             `gorm:"default:0" json:"review_count"`
	Location      string          `gorm:"size:100;index" json:"location"`
	StockQuantity int             `gorm:"default:0" json:"stock_quantity"`
	Specifications []Specification `gorm:"serializer:json" json:"specifications"`
	Tags          []string        `gorm:"serializer:json" json:"tags"`
	Featured      bool            `gorm:"default:false" json:"featured"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// InStock reports availability. Stock quantity is the single
// authoritative field; availability is always derived from it.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// MarshalJSON adds the derived in_stock field to the wire form.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		InStock bool `json:"in_stock"`
	}{
		alias:   alias(p),
		InStock: p.StockQuantity > 0,
	})
}
