package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleCompany  UserRole = "company"
	RoleHybrid   UserRole = "hybrid"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Email              string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Name               string         `gorm:"size:255;not null" json:"name"`
	Phone              string         `gorm:"size:50" json:"phone,omitempty"`
	Role               UserRole       `gorm:"type:varchar(20);not null" json:"role"`
	CompanyName        string         `gorm:"size:255" json:"company_name,omitempty"`
	RegistrationNumber string         `gorm:"size:100" json:"registration_number,omitempty"`
	VATNumber          string         `gorm:"size:100" json:"vat_number,omitempty"`
	Verified           bool           `gorm:"default:false" json:"verified"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
