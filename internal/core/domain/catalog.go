package domain

import "github.com/shopspring/decimal"

type ItemStatus string

const (
	ItemStatusAvailable    ItemStatus = "available"
	ItemStatusSold         ItemStatus = "sold"
	ItemStatusDiscontinued ItemStatus = "discontinued"
)

// CatalogItem is a sellable painting as exposed to the point-of-sale
// workflow. The remote backend owns the record; the client never mutates it.
type CatalogItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artist       string          `json:"artist"`
	Category     string          `json:"category"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Status       ItemStatus      `json:"status"`
}

func (i CatalogItem) Available() bool {
	return i.Status == ItemStatusAvailable
}

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

type Customer struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Phone  string         `json:"phone"`
	Status CustomerStatus `json:"status"`
}

// QRMethod is a configured e-wallet or bank QR payment option. The image is
// served by the backend under /api/files/{QRCodeImageURL}.
type QRMethod struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	QRCodeImageURL string `json:"qrCodeImageUrl"`
}
