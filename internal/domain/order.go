package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает состояние заказа.
type OrderStatus string

const (
	// OrderStatusConfirmed - единственное (терминальное) состояние: заказ принят и записан в журнал.
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// UnknownProductName подставляется, когда клиент не передал название товара.
const UnknownProductName = "Unknown Product"

// Order - запись журнала заказов. После добавления в журнал не изменяется.
//
// JSON-имена полей совпадают с контрактом, на который рассчитан браузерный клиент.
type Order struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	Quantity     int64           `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	OwnerID      string          `json:"userId"`
	OwnerName    string          `json:"username"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// OrderDraft - провалидированные данные запроса на создание заказа.
type OrderDraft struct {
	ProductID    string
	ProductName  string
	Quantity     int64
	PricePerUnit decimal.Decimal
}

// NewOrder собирает подтверждённый заказ. Сумма всегда пересчитывается из цены и количества.
func NewOrder(id string, draft OrderDraft, owner Identity, now time.Time) Order {
	name := draft.ProductName
	if name == "" {
		name = UnknownProductName
	}
	return Order{
		ID:           id,
		ProductID:    draft.ProductID,
		ProductName:  name,
		Quantity:     draft.Quantity,
		PricePerUnit: draft.PricePerUnit,
		TotalAmount:  draft.PricePerUnit.Mul(decimal.NewFromInt(draft.Quantity)),
		OwnerID:      owner.SubjectID,
		OwnerName:    owner.DisplayName,
		Status:       OrderStatusConfirmed,
		CreatedAt:    now,
	}
}

// Validate проверяет черновик и возвращает первую найденную ошибку (обёрнутую ErrInvalidRequest).
func (d OrderDraft) Validate() error {
	switch {
	case d.ProductID == "", d.Quantity <= 0:
		return InvalidRequest("productId and quantity are required")
	case d.PricePerUnit.IsNegative():
		return InvalidRequest("price must be non-negative")
	}
	return nil
}

// ValidateInvariants проверяет инварианты уже собранного заказа.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.ID == "" {
		errs = append(errs, ErrOrderIDRequired)
	}
	if o.OwnerID == "" {
		errs = append(errs, ErrOwnerRequired)
	}
	if o.Quantity <= 0 {
		errs = append(errs, ErrQuantityInvalid)
	}
	if o.PricePerUnit.IsNegative() {
		errs = append(errs, ErrPriceNegative)
	}
	// Сумма обязана совпадать с price * qty.
	if !o.TotalAmount.Equal(o.PricePerUnit.Mul(decimal.NewFromInt(o.Quantity))) {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
