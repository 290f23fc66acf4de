package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is a cotización: priced product lines plus IVA, rendered to a PDF
// that is uploaded to the object store under PDFKey.
type Quote struct {
	ID          uuid.UUID
	EntityID    uuid.UUID
	QuoteNumber string
	Lines       []QuoteLine `gorm:"-"`
	Subtotal    decimal.Decimal
	IVARate     decimal.Decimal
	IVAAmount   decimal.Decimal
	Total       decimal.Decimal
	PDFKey      string
	CreatedAt   time.Time
}

type QuoteLine struct {
	ID          uuid.UUID
	QuoteID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// QuoteDocument carries everything the PDF generator needs.
type QuoteDocument struct {
	Quote      Quote
	EntityName string
}
