package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a purchase order placed from the portal.
type Order struct {
	ID          uuid.UUID
	EntityID    uuid.UUID
	OrderNumber string
	Lines       []OrderLine `gorm:"-"`
	Total       decimal.Decimal
	CreatedAt   time.Time
}

type OrderLine struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
