package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// TopicNotifications - топик уведомлений, который читает notification-сервис.
const TopicNotifications = "storefront.notifications"

// HeaderEventType - заголовок с типом уведомления, чтобы потребитель мог фильтровать без разбора тела.
const HeaderEventType = "x-event-type"

// ParseNotificationEvent разбирает уведомление из сообщения Kafka.
func ParseNotificationEvent(message *sarama.ConsumerMessage) (domain.NotificationEvent, error) {
	var event domain.NotificationEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return domain.NotificationEvent{}, fmt.Errorf("failed to unmarshal notification event: %w", err)
	}
	if event.Kind == "" {
		event.Kind = domain.NotificationKind(headerValue(message, HeaderEventType))
	}
	return event, nil
}

func headerValue(message *sarama.ConsumerMessage, key string) string {
	for _, header := range message.Headers {
		if header != nil && string(header.Key) == key {
			return string(header.Value)
		}
	}
	return ""
}
