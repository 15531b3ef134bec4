package model

import "time"

// AdminConfirmationCode is a single-use code required to register an
// admin account. The table is the only source of truth: there is no
// built-in fallback list.
type AdminConfirmationCode struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Used      bool       `gorm:"default:false" json:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (AdminConfirmationCode) TableName() string {
	return "admin_confirmation_codes"
}
