package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentQR   PaymentMethod = "qr"
)

var ErrInsufficientPayment = errors.New("tendered amount does not cover the total")

// ComputeChange validates the payment and returns the change due. Cash
// requires tendered >= total. QR payments carry no tendered amount and
// always yield zero change; confirmation is asserted by the operator once
// the customer has scanned and paid.
func ComputeChange(method PaymentMethod, total, tendered decimal.Decimal) (decimal.Decimal, error) {
	if method != PaymentCash {
		return decimal.Zero, nil
	}
	if tendered.LessThan(total) {
		return decimal.Decimal{}, ErrInsufficientPayment
	}
	return tendered.Sub(total), nil
}
