// Package catalogsvc обслуживает каталог товаров.
package catalogsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/coerce"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const imageURLTemplate = "https://picsum.photos/seed/%s/400/300"

// CreateProductRequest - тело POST /products. Числа принимаются и строками.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Category    string          `json:"category"`
	Stock       json.RawMessage `json:"stock"`
}

// Service - операции над каталогом.
type Service struct {
	catalog domain.ProductCatalog
	logger  *log.Entry
	now     func() time.Time
}

func NewService(catalog domain.ProductCatalog, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog-service")
	}
	return &Service{
		catalog: catalog,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", domain.ErrInternal, err)
	}
	return products, nil
}

// Get возвращает товар или domain.ErrProductNotFound.
func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	product, err := s.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("%w: get product: %v", domain.ErrInternal, err)
	}
	return product, nil
}

// Create добавляет товар. Имя и ненулевая цена обязательны.
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (domain.Product, error) {
	price := coerce.Decimal(req.Price)
	if req.Name == "" || price.IsZero() {
		return domain.Product{}, domain.InvalidRequest("Name and price are required")
	}
	if price.IsNegative() {
		return domain.Product{}, domain.InvalidRequest("price must be non-negative")
	}

	stock, ok := coerce.Int(req.Stock)
	if !ok || stock < 0 {
		stock = 0
	}
	category := req.Category
	if category == "" {
		category = domain.DefaultProductCategory
	}

	id := uuid.NewString()
	product := domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Category:    category,
		Stock:       stock,
		Image:       fmt.Sprintf(imageURLTemplate, id),
		CreatedAt:   s.now(),
	}
	if err := s.catalog.Add(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("%w: add product: %v", domain.ErrInternal, err)
	}

	s.logger.WithFields(log.Fields{"product_id": id, "name": product.Name}).Info("product created")
	return product, nil
}

// Count возвращает размер каталога для health-ответа.
func (s *Service) Count(ctx context.Context) int {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return 0
	}
	return len(products)
}
