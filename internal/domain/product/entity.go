package product

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNameRequired  = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price cannot be negative")
	ErrInvalidKind   = errors.New("invalid stock kind")
)

// StockKind decides which allocation contract applies to a product.
// Unit-pool products sell individually identified serial/secret units;
// counter products sell fungible quantity-only stock.
type StockKind string

const (
	StockKindUnitPool StockKind = "unit_pool"
	StockKindCounter  StockKind = "counter"
)

func (k StockKind) IsValid() bool {
	return k == StockKindUnitPool || k == StockKindCounter
}

type Product struct {
	id                uuid.UUID
	name              string
	stockKind         StockKind
	priceCents        int64
	isActive          bool
	lowStockThreshold int32
}

func NewProduct(id uuid.UUID, name string, kind StockKind, priceCents int64, isActive bool, lowStockThreshold int32) (*Product, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}

	return &Product{
		id:                id,
		name:              name,
		stockKind:         kind,
		priceCents:        priceCents,
		isActive:          isActive,
		lowStockThreshold: lowStockThreshold,
	}, nil
}

func (p *Product) ID() uuid.UUID            { return p.id }
func (p *Product) Name() string             { return p.name }
func (p *Product) StockKind() StockKind     { return p.stockKind }
func (p *Product) PriceCents() int64        { return p.priceCents }
func (p *Product) IsActive() bool           { return p.isActive }
func (p *Product) LowStockThreshold() int32 { return p.lowStockThreshold }

func (p *Product) IsUnitPoolBacked() bool {
	return p.stockKind == StockKindUnitPool
}
