package model

import "time"

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusFulfilled OrderStatus = "fulfilled"
)

type Order struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	Number    string      `gorm:"size:64;uniqueIndex;not null" json:"number"`
	UserID    uint        `gorm:"index;not null" json:"user_id"`
	Total     float64     `gorm:"not null" json:"total"`
	ItemCount int         `gorm:"not null" json:"item_count"`
	Status    OrderStatus `gorm:"type:varchar(20);default:'placed'" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots one cart line at checkout time.
type OrderItem struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	OrderID    uint    `gorm:"index;not null" json:"-"`
	ProductID  string  `gorm:"size:100;not null" json:"product_id"`
	Name       string  `gorm:"not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	VendorID   string  `gorm:"size:100" json:"vendor_id"`
	VendorName string  `json:"vendor_name"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
