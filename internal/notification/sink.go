package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Sink - принимающая сторона: пишет уведомление в лог вместо реальной отправки пользователю.
type Sink struct {
	logger   *log.Entry
	servedBy string
}

// NewSink создает приемник уведомлений экземпляра servedBy.
func NewSink(logger *log.Entry, servedBy string) *Sink {
	if logger == nil {
		logger = log.New().WithField("component", "notification-sink")
	}
	return &Sink{logger: logger, servedBy: servedBy}
}

// Handle разбирает JSON-объект уведомления и логирует его.
// Подтверждение заказа логируется готовым текстом, прочие типы - сырым телом.
func (s *Sink) Handle(_ context.Context, payload []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return domain.InvalidRequest("notification must be a JSON object")
	}

	var event domain.NotificationEvent
	_ = json.Unmarshal(payload, &event)

	entry := s.logger.WithFields(log.Fields{
		"served_by": s.servedBy,
		"type":      event.Kind,
	})
	if event.Kind == domain.NotificationKindOrderConfirmation {
		entry.WithField("to", event.OwnerName).Info(ConfirmationMessage(event))
		return nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err != nil {
		compact.Reset()
		compact.Write(payload)
	}
	entry.WithField("payload", compact.String()).Info("notification received")
	return nil
}

// ConfirmationMessage - текст подтверждения заказа для пользователя.
func ConfirmationMessage(event domain.NotificationEvent) string {
	return fmt.Sprintf("Your order %s for %dx %s (Total: $%s) has been confirmed!",
		event.OrderID, event.Quantity, event.ProductName, event.TotalAmount.String())
}
