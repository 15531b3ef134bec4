package model

type Category struct {
	ID            string   `gorm:"primarykey;size:100" json:"id"`
	Name          string   `gorm:"not null" json:"name"`
	Icon          string   `json:"icon"`
	Subcategories []string `gorm:"serializer:json" json:"subcategories"`
}

func (Category) TableName() string {
	return "categories"
}
