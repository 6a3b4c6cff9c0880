package domain

import "github.com/shopspring/decimal"

// NotificationKind задаёт тип уведомления.
type NotificationKind string

// NotificationKindOrderConfirmation - подтверждение заказа.
const NotificationKindOrderConfirmation NotificationKind = "order_confirmation"

// NotificationEvent - одноразовое сообщение для сервиса уведомлений.
// Order-сервис его не хранит и не узнаёт о результате доставки.
type NotificationEvent struct {
	Kind        NotificationKind `json:"type"`
	OrderID     string           `json:"orderId"`
	OwnerName   string           `json:"username"`
	ProductName string           `json:"productName"`
	Quantity    int64            `json:"quantity"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
}

// NewOrderConfirmation строит уведомление о подтверждении заказа.
func NewOrderConfirmation(order Order) NotificationEvent {
	return NotificationEvent{
		Kind:        NotificationKindOrderConfirmation,
		OrderID:     order.ID,
		OwnerName:   order.OwnerName,
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
		TotalAmount: order.TotalAmount,
	}
}
