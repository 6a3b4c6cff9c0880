package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProductCategory используется, если категория не указана.
const DefaultProductCategory = "General"

// Product - позиция каталога.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int64           `json:"stock"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"createdAt"`
}
