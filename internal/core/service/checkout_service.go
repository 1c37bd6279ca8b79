package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rl1809/gallery-pos/internal/core/domain"
	"github.com/rl1809/gallery-pos/internal/port"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingCustomer      = errors.New("no customer selected")
	ErrPaymentNotReconciled = errors.New("payment has not been reconciled")
	ErrDuplicateSubmission  = errors.New("this checkout was already submitted")
	ErrUnknownItem          = errors.New("item is not in the loaded catalog")
)

// PaymentOptions is what the payment step needs to render: valid order
// targets and the configured QR methods.
type PaymentOptions struct {
	Customers []domain.Customer `json:"customers"`
	QRMethods []domain.QRMethod `json:"qrMethods"`
}

// Reconciliation is the snapshot taken when payment is validated. Any cart
// mutation afterwards invalidates it, forcing re-validation before submit.
type Reconciliation struct {
	Method   domain.PaymentMethod `json:"method"`
	Totals   domain.Totals        `json:"totals"`
	Tendered decimal.Decimal      `json:"tendered"`
	Change   decimal.Decimal      `json:"change"`
	Key      string               `json:"idempotencyKey"`
}

// CheckoutService drives one register's sale workflow: catalog refresh,
// cart mutations, payment reconciliation, order submission. There is one
// logical operator per terminal; the mutex only guards against overlapping
// HTTP requests from the facade.
type CheckoutService struct {
	mu      sync.Mutex
	backend port.BackendGateway
	idem    port.IdempotencyStore
	logger  zerolog.Logger

	catalog []domain.CatalogItem
	cart    *domain.Cart
	rec     *Reconciliation
}

func NewCheckoutService(backend port.BackendGateway, idem port.IdempotencyStore, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		backend: backend,
		idem:    idem,
		logger:  logger.With().Str("component", "checkout").Logger(),
		cart:    domain.NewCart(),
	}
}

// RefreshCatalog reloads the painting list from the backend and returns the
// sellable subset. On failure the previous catalog and the cart are left
// untouched.
func (s *CheckoutService) RefreshCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	items, err := s.backend.ListPaintings(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh catalog: %w", err)
	}

	s.mu.Lock()
	s.catalog = items
	s.mu.Unlock()

	available := filterAvailable(items)
	s.logger.Info().Int("total", len(items)).Int("available", len(available)).Msg("catalog refreshed")
	return available, nil
}

// Catalog returns the sellable items from the last refresh.
func (s *CheckoutService) Catalog() []domain.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterAvailable(s.catalog)
}

func filterAvailable(items []domain.CatalogItem) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Available() {
			out = append(out, item)
		}
	}
	return out
}

// AddToCart puts the catalog item with the given id into the cart.
// Availability is checked against the item's status as of the last refresh.
func (s *CheckoutService) AddToCart(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.catalog {
		if item.ID == itemID {
			if err := s.cart.Add(item); err != nil {
				return err
			}
			s.invalidateReconciliation()
			return nil
		}
	}
	return ErrUnknownItem
}

// RemoveFromCart drops the item if present; absent ids are a no-op.
func (s *CheckoutService) RemoveFromCart(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(itemID)
	s.invalidateReconciliation()
}

func (s *CheckoutService) CartLines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Totals recomputes the derived amounts from the current cart.
func (s *CheckoutService) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeTotals(s.cart.Lines())
}

// LoadPaymentOptions fetches customers and active QR methods concurrently
// and joins the results. Customers are filtered to active; inactive ones are
// not valid order targets.
func (s *CheckoutService) LoadPaymentOptions(ctx context.Context) (*PaymentOptions, error) {
	var (
		wg           sync.WaitGroup
		customers    []domain.Customer
		qrMethods    []domain.QRMethod
		custErr      error
		qrMethodsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		customers, custErr = s.backend.ListCustomers(ctx)
	}()
	go func() {
		defer wg.Done()
		qrMethods, qrMethodsErr = s.backend.ListActiveQRMethods(ctx)
	}()
	wg.Wait()

	if custErr != nil {
		return nil, fmt.Errorf("load payment options: %w", custErr)
	}
	if qrMethodsErr != nil {
		return nil, fmt.Errorf("load payment options: %w", qrMethodsErr)
	}

	active := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if c.Status == domain.CustomerStatusActive {
			active = append(active, c)
		}
	}

	return &PaymentOptions{Customers: active, QRMethods: qrMethods}, nil
}

// Reconcile validates the payment against the current totals and gates
// submission. On success it snapshots the totals and mints the idempotency
// key the submission will carry. For QR methods the call is the operator's
// "payment completed" assertion; no provider verification happens here.
func (s *CheckoutService) Reconcile(method domain.PaymentMethod, tendered decimal.Decimal) (*Reconciliation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Empty() {
		return nil, ErrEmptyCart
	}

	totals := domain.ComputeTotals(s.cart.Lines())
	change, err := domain.ComputeChange(method, totals.Total, tendered)
	if err != nil {
		return nil, err
	}

	s.rec = &Reconciliation{
		Method:   method,
		Totals:   totals,
		Tendered: tendered,
		Change:   change,
		Key:      uuid.NewString(),
	}
	rec := *s.rec
	return &rec, nil
}

// Reconciliation returns the current snapshot, or nil if the checkout has
// not been reconciled since the last cart mutation.
func (s *CheckoutService) Reconciliation() *Reconciliation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return nil
	}
	rec := *s.rec
	return &rec
}

// Submit sends the order to the backend. Prices are captured from the cart
// lines, not re-read. On success the cart and reconciliation are cleared;
// on failure both are kept and the idempotency key is released so the
// operator can retry or adjust.
func (s *CheckoutService) Submit(ctx context.Context, customerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Empty() {
		return "", ErrEmptyCart
	}
	if customerID == "" {
		return "", ErrMissingCustomer
	}
	if s.rec == nil {
		return "", ErrPaymentNotReconciled
	}

	ok, err := s.idem.Reserve(ctx, s.rec.Key)
	if err != nil {
		return "", fmt.Errorf("reserve submission key: %w", err)
	}
	if !ok {
		return "", ErrDuplicateSubmission
	}

	lines := s.cart.Lines()
	req := domain.OrderRequest{
		CustomerID: customerID,
		Lines:      make([]domain.OrderLine, 0, len(lines)),
	}
	for _, line := range lines {
		req.Lines = append(req.Lines, domain.OrderLine{
			PaintingID: line.Item.ID,
			Quantity:   line.Quantity,
			Price:      line.Item.SellingPrice,
		})
	}

	orderID, err := s.backend.CreateOrder(ctx, req, s.rec.Key)
	if err != nil {
		if relErr := s.idem.Release(ctx, s.rec.Key); relErr != nil {
			s.logger.Error().Err(relErr).Str("key", s.rec.Key).Msg("failed to release submission key")
		}
		return "", fmt.Errorf("submit order: %w", err)
	}

	s.logger.Info().Str("order_id", orderID).Str("customer_id", customerID).
		Str("total", s.rec.Totals.Total.String()).Msg("order submitted")

	s.cart.Clear()
	s.rec = nil
	return orderID, nil
}

func (s *CheckoutService) invalidateReconciliation() {
	s.rec = nil
}
