package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ProductCatalog - in-memory каталог, сохраняет порядок добавления.
type ProductCatalog struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewProductCatalog создаёт каталог с заданными товарами.
func NewProductCatalog(seed ...domain.Product) *ProductCatalog {
	products := make([]domain.Product, len(seed))
	copy(products, seed)
	return &ProductCatalog{products: products}
}

// List возвращает копию каталога.
func (c *ProductCatalog) List(context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]domain.Product, len(c.products))
	copy(result, c.products)
	return result, nil
}

// Get ищет товар по ID.
func (c *ProductCatalog) Get(_ context.Context, id string) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// Add добавляет товар в конец каталога.
func (c *ProductCatalog) Add(_ context.Context, product domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = append(c.products, product)
	return nil
}

// DemoProducts возвращает стартовый набор товаров для демо-стенда.
func DemoProducts(now time.Time) []domain.Product {
	mk := func(id, name, description, price, category string, stock int64, seed string) domain.Product {
		return domain.Product{
			ID:          id,
			Name:        name,
			Description: description,
			Price:       decimal.RequireFromString(price),
			Category:    category,
			Stock:       stock,
			Image:       "https://picsum.photos/seed/" + seed + "/400/300",
			CreatedAt:   now,
		}
	}
	return []domain.Product{
		mk("1", "Wireless Headphones", "Premium noise-cancelling wireless headphones", "199.99", "Electronics", 50, "headphones"),
		mk("2", "Mechanical Keyboard", "RGB mechanical keyboard with Cherry MX switches", "149.99", "Electronics", 30, "keyboard"),
		mk("3", "Ergonomic Mouse", "Vertical ergonomic mouse for all-day comfort", "79.99", "Electronics", 75, "mouse"),
		mk("4", "USB-C Hub", "7-in-1 USB-C Hub with HDMI, SD card, and USB 3.0 ports", "49.99", "Accessories", 100, "hub"),
		mk("5", "Laptop Stand", "Adjustable aluminum laptop stand for better ergonomics", "39.99", "Accessories", 60, "stand"),
		mk("6", "Webcam 4K", "4K autofocus webcam with built-in microphone", "129.99", "Electronics", 40, "webcam"),
	}
}

var _ domain.ProductCatalog = (*ProductCatalog)(nil)
