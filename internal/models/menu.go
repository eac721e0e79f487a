package models

import "github.com/shopspring/decimal"

// MenuItem price is authoritative at order time.
type MenuItem struct {
	ID    uint            `gorm:"primaryKey" json:"id"`
	Name  string          `gorm:"size:255;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (MenuItem) TableName() string { return "menu" }
