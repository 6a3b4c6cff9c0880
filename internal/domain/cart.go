package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem - позиция корзины.
type CartItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

// TotalPrice возвращает price * quantity.
func (i CartItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Cart - корзина пользователя. Позиции индексируются по productId.
type Cart struct {
	UserID    string              `json:"userId"`
	Items     map[string]CartItem `json:"items"`
	CreatedAt int64               `json:"createdAt"`
	UpdatedAt int64               `json:"updatedAt"`
}

// CartSummary - агрегаты корзины.
type CartSummary struct {
	TotalItems int64           `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	ItemCount  int             `json:"itemCount"`
}

// NewCart создаёт пустую корзину.
func NewCart(userID string, now time.Time) Cart {
	ts := now.UnixMilli()
	return Cart{
		UserID:    userID,
		Items:     make(map[string]CartItem),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// AddItem добавляет позицию; для уже существующего товара суммирует количество.
func (c *Cart) AddItem(item CartItem, now time.Time) {
	if c.Items == nil {
		c.Items = make(map[string]CartItem)
	}
	if existing, ok := c.Items[item.ProductID]; ok {
		existing.Quantity += item.Quantity
		c.Items[item.ProductID] = existing
	} else {
		c.Items[item.ProductID] = item
	}
	c.UpdatedAt = now.UnixMilli()
}

// RemoveItem удаляет позицию по productId.
func (c *Cart) RemoveItem(productID string, now time.Time) {
	delete(c.Items, productID)
	c.UpdatedAt = now.UnixMilli()
}

// UpdateQuantity меняет количество; quantity <= 0 удаляет позицию.
// Для отсутствующего товара ничего не делает.
func (c *Cart) UpdateQuantity(productID string, quantity int64, now time.Time) {
	item, ok := c.Items[productID]
	if !ok {
		return
	}
	if quantity <= 0 {
		delete(c.Items, productID)
	} else {
		item.Quantity = quantity
		c.Items[productID] = item
	}
	c.UpdatedAt = now.UnixMilli()
}

// Clear очищает корзину.
func (c *Cart) Clear(now time.Time) {
	c.Items = make(map[string]CartItem)
	c.UpdatedAt = now.UnixMilli()
}

// Summary считает количество единиц, сумму и число позиций.
func (c Cart) Summary() CartSummary {
	summary := CartSummary{TotalPrice: decimal.Zero, ItemCount: len(c.Items)}
	for _, item := range c.Items {
		summary.TotalItems += item.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(item.TotalPrice())
	}
	return summary
}
