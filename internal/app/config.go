package app

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/notification"
	cartsvc "github.com/vladislavdragonenkov/storefront/internal/service/cart"
)

// Транспорт уведомлений order-сервиса.
const (
	TransportHTTP  = "http"
	TransportKafka = "kafka"
)

// Драйверы хранилища пользователей auth-сервиса.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// DefaultJWTSecret используется, если JWT_SECRET не задан. Только для локального запуска.
const DefaultJWTSecret = "your-secret-key"

// OrderConfig описывает настройки order-сервиса.
type OrderConfig struct {
	Addr                  string
	MetricsAddr           string
	JWTSecret             string
	NotificationURL       string
	NotificationTransport string
	KafkaBrokers          []string
	NotificationTopic     string
	NotificationTimeout   time.Duration
	InstanceName          string
}

// DefaultOrderConfig возвращает настройки по умолчанию.
func DefaultOrderConfig() OrderConfig {
	return OrderConfig{
		Addr:                  ":3003",
		MetricsAddr:           ":9090",
		JWTSecret:             DefaultJWTSecret,
		NotificationURL:       "http://notification-service:3004",
		NotificationTransport: TransportHTTP,
		NotificationTopic:     kafka.TopicNotifications,
		NotificationTimeout:   notification.DefaultTimeout,
		InstanceName:          "order-service",
	}
}

// NotificationConfig описывает настройки notification-сервиса.
type NotificationConfig struct {
	Addr              string
	KafkaBrokers      []string
	NotificationTopic string
	KafkaGroupID      string
	InstanceName      string
}

func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Addr:              ":3004",
		NotificationTopic: kafka.TopicNotifications,
		KafkaGroupID:      "notification-service",
		InstanceName:      "notification-service",
	}
}

// AuthConfig описывает настройки auth-сервиса.
type AuthConfig struct {
	Addr                string
	JWTSecret           string
	TokenTTL            time.Duration
	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool
	InstanceName        string
}

func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		Addr:                ":3001",
		JWTSecret:           DefaultJWTSecret,
		TokenTTL:            auth.DefaultTokenTTL,
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		InstanceName:        "auth-service",
	}
}

// ProductConfig описывает настройки product-сервиса.
type ProductConfig struct {
	Addr         string
	JWTSecret    string
	InstanceName string
}

func DefaultProductConfig() ProductConfig {
	return ProductConfig{
		Addr:         ":3002",
		JWTSecret:    DefaultJWTSecret,
		InstanceName: "product-service",
	}
}

// CartConfig описывает настройки cart-сервиса. Пустой RedisAddr включает хранение в памяти.
type CartConfig struct {
	Addr          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CartTTL       time.Duration
	InstanceName  string
}

func DefaultCartConfig() CartConfig {
	return CartConfig{
		Addr:         ":8080",
		CartTTL:      cartsvc.DefaultTTL,
		InstanceName: "cart-service",
	}
}
