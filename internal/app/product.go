package app

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/httpapi"
	catalogsvc "github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// RunProductService обслуживает каталог, заполненный демо-товарами.
func RunProductService(ctx context.Context, cfg ProductConfig) error {
	logger := log.WithField("component", "app").WithField("service", "product-service")
	logger.WithField("addr", cfg.Addr).Info("product service starting")
	return serveHTTP(ctx, cfg.Addr, newProductHandler(cfg, time.Now()), logger)
}

func newProductHandler(cfg ProductConfig, seededAt time.Time) http.Handler {
	catalog := catalogsvc.NewService(
		memory.NewProductCatalog(memory.DemoProducts(seededAt)...),
		log.WithField("component", "catalog-service"),
	)
	return httpapi.NewHandler(
		log.WithField("component", "http").WithField("served_by", cfg.InstanceName),
		httpapi.NewProductHandler(catalog, auth.NewVerifier(cfg.JWTSecret), cfg.InstanceName, log.WithField("component", "product-handler")),
		probeRoutes{health: healthcheck.NewHandler("product-service", version.Current().Version)},
	)
}
