package request

import "github.com/google/uuid"

type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Email string         `json:"email" binding:"required,email"`
	Items []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}
