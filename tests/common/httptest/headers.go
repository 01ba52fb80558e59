//go:build unit || integration

package httptest

import "github.com/google/uuid"

func UserHeaders(userID uuid.UUID) map[string]string {
	return map[string]string{"X-User-ID": userID.String()}
}

func CheckoutHeaders(userID, idempotencyKey uuid.UUID) map[string]string {
	return map[string]string{
		"X-User-ID":       userID.String(),
		"Idempotency-Key": idempotencyKey.String(),
	}
}
