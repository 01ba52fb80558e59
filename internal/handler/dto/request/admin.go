package request

import "github.com/google/uuid"

type RestockUnit struct {
	SerialNumber string `json:"serial_number" binding:"required"`
	Secret       string `json:"secret" binding:"required"`
}

// RestockRequest carries either a unit batch (unit-pool products) or a
// quantity (counter products), never both.
type RestockRequest struct {
	ProductID uuid.UUID     `json:"product_id" binding:"required"`
	Quantity  int32         `json:"quantity" binding:"omitempty,min=1"`
	Units     []RestockUnit `json:"units" binding:"omitempty,dive"`
}
