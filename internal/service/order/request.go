package ordersvc

import (
	"encoding/json"

	"github.com/vladislavdragonenkov/storefront/internal/coerce"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// PlaceOrderRequest - тело POST /orders до приведения типов.
// Поля хранятся сырыми: клиенты присылают числа и строками, и числами.
type PlaceOrderRequest struct {
	ProductID   json.RawMessage `json:"productId"`
	ProductName json.RawMessage `json:"productName"`
	Quantity    json.RawMessage `json:"quantity"`
	Price       json.RawMessage `json:"price"`
}

// Draft приводит поля запроса к типам заказа и валидирует результат.
//
// Количество: число обрезается до целого, строка разбирается по ведущему целому префиксу.
// Цена: число берется как есть, строка разбирается по ведущему десятичному префиксу.
// Все, что разобрать нельзя, становится нулем.
func (r PlaceOrderRequest) Draft() (domain.OrderDraft, error) {
	productID, ok := coerce.Identifier(r.ProductID)
	if !ok {
		return domain.OrderDraft{}, domain.InvalidRequest("productId and quantity are required")
	}

	quantity, ok := coerce.Int(r.Quantity)
	if !ok {
		return domain.OrderDraft{}, domain.InvalidRequest("quantity is out of range")
	}

	draft := domain.OrderDraft{
		ProductID:    productID,
		ProductName:  coerce.String(r.ProductName),
		Quantity:     quantity,
		PricePerUnit: coerce.Decimal(r.Price),
	}
	if err := draft.Validate(); err != nil {
		return domain.OrderDraft{}, err
	}
	return draft, nil
}
