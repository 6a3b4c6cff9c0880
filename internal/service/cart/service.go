// Package cartsvc управляет корзинами пользователей поверх domain.CartStore.
package cartsvc

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/coerce"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// DefaultTTL - срок жизни корзины после последнего изменения.
const DefaultTTL = 24 * time.Hour

// Service реализует операции корзины. Каждое изменение перезаписывает корзину целиком и продлевает TTL.
type Service struct {
	store  domain.CartStore
	ttl    time.Duration
	logger *log.Entry
	now    func() time.Time
}

// NewService конструирует сервис; ttl <= 0 заменяется на DefaultTTL.
func NewService(store domain.CartStore, ttl time.Duration, logger *log.Entry) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.New().WithField("component", "cart-service")
	}
	return &Service{store: store, ttl: ttl, logger: logger, now: time.Now}
}

// Get возвращает корзину; отсутствующая корзина отдается пустой и не сохраняется.
func (s *Service) Get(ctx context.Context, userID string) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, domain.InvalidRequest("userId is required")
	}
	cart, ok, err := s.store.Load(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to load cart")
		return domain.Cart{}, fmt.Errorf("%w: load cart: %v", domain.ErrInternal, err)
	}
	if !ok {
		return domain.NewCart(userID, s.now()), nil
	}
	if cart.Items == nil {
		cart.Items = make(map[string]domain.CartItem)
	}
	return cart, nil
}

// AddItem добавляет позицию или увеличивает количество уже добавленного товара.
func (s *Service) AddItem(ctx context.Context, userID string, item domain.CartItem) (domain.Cart, error) {
	if item.ProductID == "" {
		return domain.Cart{}, domain.InvalidRequest("productId is required")
	}
	if item.Quantity <= 0 {
		return domain.Cart{}, domain.InvalidRequest("quantity must be greater than zero")
	}
	if !coerce.InRange(item.Price) {
		return domain.Cart{}, domain.InvalidRequest("price is out of range")
	}
	return s.mutate(ctx, userID, func(cart *domain.Cart, now time.Time) {
		cart.AddItem(item, now)
	})
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (domain.Cart, error) {
	return s.mutate(ctx, userID, func(cart *domain.Cart, now time.Time) {
		cart.RemoveItem(productID, now)
	})
}

// UpdateQuantity задает количество; 0 удаляет позицию, отрицательное значение отклоняется.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int64) (domain.Cart, error) {
	if quantity < 0 {
		return domain.Cart{}, domain.InvalidRequest("quantity must be non-negative")
	}
	return s.mutate(ctx, userID, func(cart *domain.Cart, now time.Time) {
		cart.UpdateQuantity(productID, quantity, now)
	})
}

func (s *Service) Clear(ctx context.Context, userID string) (domain.Cart, error) {
	return s.mutate(ctx, userID, func(cart *domain.Cart, now time.Time) {
		cart.Clear(now)
	})
}

func (s *Service) Summary(ctx context.Context, userID string) (domain.CartSummary, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return cart.Summary(), nil
}

// Delete удаляет корзину вместе с ключом хранилища.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.InvalidRequest("userId is required")
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to delete cart")
		return fmt.Errorf("%w: delete cart: %v", domain.ErrInternal, err)
	}
	s.logger.WithField("user_id", userID).Info("cart deleted")
	return nil
}

func (s *Service) mutate(ctx context.Context, userID string, change func(cart *domain.Cart, now time.Time)) (domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	change(&cart, s.now())

	if err := s.store.Save(ctx, cart, s.ttl); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to save cart")
		return domain.Cart{}, fmt.Errorf("%w: save cart: %v", domain.ErrInternal, err)
	}
	s.logger.WithFields(log.Fields{"user_id": userID, "items": len(cart.Items)}).Debug("cart saved")
	return cart, nil
}
