package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rl1809/gallery-pos/internal/core/domain"
)

const requestTimeout = 10 * time.Second

// Session carries the bearer token and cashier identity for backend calls.
// It is passed in explicitly rather than read from ambient storage, so the
// caller always knows which identity a request runs under.
type Session struct {
	Token     string
	AccountID string
	Username  string
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// Client is a typed REST client for the remote gallery backend.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	logger  zerolog.Logger
}

func NewClient(baseURL string, session *Session, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		session: session,
		logger:  logger.With().Str("component", "backend_client").Logger(),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID           string `json:"id"`
		Username     string `json:"username"`
		EmployeeName string `json:"employeeName"`
		Role         string `json:"role"`
	} `json:"user"`
}

// Login authenticates against the backend and stores the issued token in
// the session shared with subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login: %w", errorFromResponse(resp))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}

	c.session.Token = lr.Token
	c.session.AccountID = lr.User.ID
	c.session.Username = lr.User.Username
	c.logger.Info().Str("username", lr.User.Username).Msg("logged in")
	return nil
}

func (c *Client) ListPaintings(ctx context.Context) ([]domain.CatalogItem, error) {
	var items []domain.CatalogItem
	if err := c.getJSON(ctx, "/api/paintings", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := c.getJSON(ctx, "/api/customers", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) ListActiveQRMethods(ctx context.Context) ([]domain.QRMethod, error) {
	var methods []domain.QRMethod
	if err := c.getJSON(ctx, "/api/payment-methods/active-qr", &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder submits the order. The idempotency key lets the backend
// de-duplicate a retried request after an ambiguous timeout.
func (c *Client) CreateOrder(ctx context.Context, order domain.OrderRequest, idempotencyKey string) (string, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return "", &SubmissionError{Err: fmt.Errorf("encode order: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return "", &SubmissionError{Err: fmt.Errorf("build order request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		subErr := &SubmissionError{StatusCode: resp.StatusCode}
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil {
			subErr.Reason = apiErr.Error
		}
		return "", subErr
	}

	var cr createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", &SubmissionError{Err: fmt.Errorf("decode order response: %w", err)}
	}
	return cr.ID, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCatalogUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: %v", ErrCatalogUnavailable, path, errorFromResponse(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrCatalogUnavailable, path, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.session.LoggedIn() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
}

type apiError struct {
	Error string `json:"error"`
}

func errorFromResponse(resp *http.Response) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("status %d", resp.StatusCode)
}
