package response

import "pinmarket/internal/usecase"

type CheckoutResponse struct {
	Order            *OrderResponse `json:"order"`
	PaymentRef       string         `json:"payment_ref,omitempty"`
	AuthorizationURL string         `json:"authorization_url,omitempty"`
}

func FromCheckoutResult(result *usecase.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		Order:            FromOrder(result.Order),
		PaymentRef:       result.PaymentRef,
		AuthorizationURL: result.AuthorizationURL,
	}
}
