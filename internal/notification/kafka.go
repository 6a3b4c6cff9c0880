package notification

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
)

// EventPublisher публикует событие в топик. Реализуется kafka.Producer.
type EventPublisher interface {
	PublishEvent(topic string, key string, event any, headers ...kafka.Header) error
}

// KafkaDispatcher кладет уведомление в топик; доставку выполняет notification-сервис.
type KafkaDispatcher struct {
	publisher EventPublisher
	topic     string
}

// NewKafkaDispatcher создает диспетчер; пустой topic заменяется на kafka.TopicNotifications.
func NewKafkaDispatcher(publisher EventPublisher, topic string) *KafkaDispatcher {
	if topic == "" {
		topic = kafka.TopicNotifications
	}
	return &KafkaDispatcher{publisher: publisher, topic: topic}
}

// Dispatch публикует событие с ключом orderId.
func (d *KafkaDispatcher) Dispatch(ctx context.Context, event domain.NotificationEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationUndeliverable, err)
	}
	header := kafka.Header{Key: kafka.HeaderEventType, Value: string(event.Kind)}
	if err := d.publisher.PublishEvent(d.topic, event.OrderID, event, header); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationUndeliverable, err)
	}
	return nil
}

var _ domain.NotificationDispatcher = (*KafkaDispatcher)(nil)
