package response

import (
	"time"

	"pinmarket/internal/domain/unit"

	"github.com/google/uuid"
)

// FulfilledUnitResponse is the only representation that carries the unit
// secret; it is served exclusively for paid orders.
type FulfilledUnitResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"product_id"`
	SerialNumber string     `json:"serial_number"`
	Secret       string     `json:"secret"`
	SoldAt       *time.Time `json:"sold_at,omitempty"`
}

func FromFulfilledUnits(units []*unit.Unit) []FulfilledUnitResponse {
	out := make([]FulfilledUnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, FulfilledUnitResponse{
			ID:           u.ID(),
			ProductID:    u.ProductID(),
			SerialNumber: u.SerialNumber(),
			Secret:       u.Secret(),
			SoldAt:       u.SoldAt(),
		})
	}
	return out
}
