package models

import (
	"time"
)

// Product represents a stock item in the inventory.
// SKU is unique across the table; price and quantity are never negative.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Category    string    `gorm:"not null;index" json:"category"`
	SKU         string    `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Price       float64   `gorm:"not null;check:chk_products_price,price >= 0" json:"price"`
	Quantity    int       `gorm:"not null;default:0;check:chk_products_quantity,quantity >= 0" json:"quantity"`
	Description string    `gorm:"not null;default:''" json:"description"`
	CreatedAt   time.Time `gorm:"<-:create;not null" json:"created_at"`
}

func (p *Product) TableName() string {
	return "products"
}

