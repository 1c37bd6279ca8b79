package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderLine captures the price at submission time, not a live re-read, so a
// mid-transaction price change cannot affect an in-flight sale.
type OrderLine struct {
	PaintingID string          `json:"paintingId"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

// OrderRequest is the order-creation payload sent to the backend. UserID
// identifies the cashier account when a session is established.
type OrderRequest struct {
	CustomerID string      `json:"customerId"`
	UserID     string      `json:"userId,omitempty"`
	Lines      []OrderLine `json:"orderDetails"`
}

// Order is the durable sale record owned by the backend; the client only
// ever reads it back.
type Order struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customerId"`
	UserID     string          `json:"userId,omitempty"`
	Lines      []OrderLine     `json:"orderDetails"`
	Total      decimal.Decimal `json:"total"`
	Status     OrderStatus     `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}
