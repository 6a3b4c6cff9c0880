package domain

import (
	"context"
	"time"
)

// OrderLedger - упорядоченный журнал заказов, только добавление.
type OrderLedger interface {
	// Append атомарно добавляет заказ в конец журнала и возвращает новую длину.
	// При ошибке журнал не меняется.
	Append(order Order) (int, error)
	// ListByOwner возвращает заказы владельца в порядке добавления.
	ListByOwner(ownerID string) ([]Order, error)
	// Len возвращает общее число заказов.
	Len() int
}

// CredentialVerifier проверяет значение заголовка Authorization.
type CredentialVerifier interface {
	// Verify возвращает ErrUnauthenticated без токена и ErrInvalidCredential для плохого токена.
	Verify(authorization string) (Identity, error)
}

// NotificationDispatcher делает одну попытку доставить уведомление.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, event NotificationEvent) error
}

// NotificationSubmitter принимает уведомление и возвращает управление сразу.
// Результат доставки вызывающему недоступен.
type NotificationSubmitter interface {
	Submit(event NotificationEvent)
}

// UserRepository хранит пользователей auth-сервиса.
type UserRepository interface {
	// Create сохраняет пользователя или возвращает ErrUserExists.
	Create(ctx context.Context, user User) error
	// GetByUsername возвращает пользователя или ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (User, error)
}

// ProductCatalog хранит каталог товаров.
type ProductCatalog interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Add(ctx context.Context, product Product) error
}

// CartStore хранит корзины пользователей.
type CartStore interface {
	// Load возвращает корзину и false, если её ещё нет.
	Load(ctx context.Context, userID string) (Cart, bool, error)
	// Save перезаписывает корзину с заданным TTL.
	Save(ctx context.Context, cart Cart, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}
