package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductKind string

const (
	ProductKindFungus   ProductKind = "FUNGUS"
	ProductKindBacteria ProductKind = "BACTERIA"
	ProductKindBiochar  ProductKind = "BIOCHAR"
)

// Product is an immutable catalog entry. Rows are seeded out of band and
// never mutated by this service.
type Product struct {
	ID           uuid.UUID
	Name         string
	Abbreviation string
	Kind         ProductKind
	Unit         string
	UnitPrice    decimal.Decimal
}
