package port

import (
	"context"

	"github.com/rl1809/gallery-pos/internal/core/domain"
)

type BackendGateway interface {
	// ListPaintings returns the full painting catalog, every status included
	ListPaintings(ctx context.Context) ([]domain.CatalogItem, error)

	// ListCustomers returns all customers known to the backend
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// ListActiveQRMethods returns the configured e-wallet/bank QR options
	ListActiveQRMethods(ctx context.Context) ([]domain.QRMethod, error)

	// CreateOrder submits the order and returns the created order's id
	CreateOrder(ctx context.Context, req domain.OrderRequest, idempotencyKey string) (string, error)
}
