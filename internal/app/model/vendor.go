package model

import "time"

// BusinessHours holds free-text opening hours per weekday.
type BusinessHours struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

// VendorPolicies holds free-text store policies.
type VendorPolicies struct {
	Returns  string `json:"returns"`
	Shipping string `json:"shipping"`
	Warranty string `json:"warranty"`
}

type Vendor struct {
	ID            string         `gorm:"primarykey;size:100" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Logo          string         `json:"logo"`
	Description   string         `gorm:"type:text" json:"description"`
	Rating        float64        `json:"rating"`
	TotalReviews  int            `gorm:"default:0" json:"total_reviews"`
	Location      string         `gorm:"size:100;index" json:"location"`
	Address       string         `json:"address"`
	Phone         string         `gorm:"size:50" json:"phone"`
	Email         string         `gorm:"size:255" json:"email"`
	Categories    []string       `gorm:"serializer:json" json:"categories"`
	Verified      bool           `gorm:"default:false" json:"verified"`
	BusinessHours BusinessHours  `gorm:"embedded;embeddedPrefix:hours_" json:"business_hours"`
	Policies      VendorPolicies `gorm:"embedded;embeddedPrefix:policy_" json:"policies"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Vendor) TableName() string {
	return "vendors"
}

// VendorRef is the {id,name} snapshot embedded in cart lines and
// favorite items. It is intentionally denormalized: the snapshot keeps
// what the buyer saw even if the vendor record changes later.
type VendorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
