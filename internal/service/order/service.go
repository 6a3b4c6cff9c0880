// Package ordersvc реализует прием заказов: проверка черновика, запись в журнал
// и передача уведомления в фоновую доставку.
package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// OrderIDPrefix - префикс идентификаторов заказов.
const OrderIDPrefix = "ORD-"

// Причины отказа для метрики storefront_order_rejections_total.
const (
	rejectUnauthenticated = "unauthenticated"
	rejectInvalidRequest  = "invalid_request"
	rejectInternal        = "internal"
)

// Service оформляет и выдает заказы текущего экземпляра.
type Service struct {
	ledger   domain.OrderLedger
	notifier domain.NotificationSubmitter
	metrics  *metrics.OrderMetrics
	logger   *log.Entry

	now   func() time.Time
	newID func() (string, error)
}

// NewService конструирует сервис с зависимостями. notifier и metrics могут быть nil.
func NewService(
	ledger domain.OrderLedger,
	notifier domain.NotificationSubmitter,
	m *metrics.OrderMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{
		ledger:   ledger,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    newOrderID,
	}
}

func newOrderID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return OrderIDPrefix + id.String(), nil
}

// PlaceOrder проверяет запрос, синхронно добавляет заказ в журнал и ставит уведомление в очередь.
// Журнал меняется только при успешном возврате.
func (s *Service) PlaceOrder(_ context.Context, owner domain.Identity, req PlaceOrderRequest) (domain.Order, error) {
	if owner.SubjectID == "" {
		s.metrics.RecordRejection(rejectUnauthenticated)
		return domain.Order{}, domain.ErrUnauthenticated
	}

	draft, err := req.Draft()
	if err != nil {
		s.metrics.RecordRejection(rejectInvalidRequest)
		return domain.Order{}, err
	}

	id, err := s.newID()
	if err != nil {
		s.metrics.RecordRejection(rejectInternal)
		s.logger.WithError(err).Error("failed to generate order id")
		return domain.Order{}, fmt.Errorf("%w: generate order id", domain.ErrInternal)
	}

	order := domain.NewOrder(id, draft, owner, s.now())
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		s.metrics.RecordRejection(rejectInternal)
		s.logger.WithError(errors.Join(errs...)).WithField("order_id", id).Error("order violates invariants")
		return domain.Order{}, fmt.Errorf("%w: %v", domain.ErrInternal, errors.Join(errs...))
	}

	size, err := s.ledger.Append(order)
	if err != nil {
		s.metrics.RecordRejection(rejectInternal)
		s.logger.WithError(err).WithField("order_id", id).Error("failed to append order to ledger")
		return domain.Order{}, fmt.Errorf("%w: append order: %v", domain.ErrInternal, err)
	}

	s.metrics.RecordOrderPlaced(size)
	s.logger.WithFields(log.Fields{
		"order_id":   order.ID,
		"user_id":    order.OwnerID,
		"product_id": order.ProductID,
		"quantity":   order.Quantity,
	}).Info("order placed")

	if s.notifier != nil {
		s.notifier.Submit(domain.NewOrderConfirmation(order))
	}
	return order, nil
}

// ListOrders возвращает заказы владельца в порядке добавления. Журнал не меняется.
func (s *Service) ListOrders(_ context.Context, owner domain.Identity) ([]domain.Order, error) {
	if owner.SubjectID == "" {
		return nil, domain.ErrUnauthenticated
	}

	orders, err := s.ledger.ListByOwner(owner.SubjectID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", owner.SubjectID).Error("failed to list orders")
		return nil, fmt.Errorf("%w: list orders: %v", domain.ErrInternal, err)
	}
	return orders, nil
}

// Count возвращает общее число заказов в журнале экземпляра.
func (s *Service) Count() int {
	return s.ledger.Len()
}
