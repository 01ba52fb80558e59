package unit

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSerialNumberRequired = errors.New("serial number is required")
	ErrSecretRequired       = errors.New("secret is required")
	ErrInvalidState         = errors.New("invalid unit state")
	ErrOrderBindingMismatch = errors.New("order binding does not match unit state")
)

// Unit is one individually identified sellable asset (serial number plus
// secret payload). A serial number is never reused: releasing a claim returns
// the same unit to the pool, it does not mint a new one.
type Unit struct {
	id           uuid.UUID
	productID    uuid.UUID
	serialNumber string
	secret       string
	state        State
	orderID      *uuid.UUID
	claimedAt    *time.Time
	soldAt       *time.Time
	expiresAt    *time.Time
	createdAt    time.Time
}

// NewUnit creates a fresh available unit, as produced by a restock batch.
func NewUnit(productID uuid.UUID, serialNumber, secret string) (*Unit, error) {
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return nil, ErrSerialNumberRequired
	}
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}

	return &Unit{
		id:           uuid.New(),
		productID:    productID,
		serialNumber: serialNumber,
		secret:       secret,
		state:        StateAvailable,
	}, nil
}

func Reconstruct(
	id, productID uuid.UUID,
	serialNumber, secret string,
	state State,
	orderID *uuid.UUID,
	claimedAt, soldAt, expiresAt *time.Time,
	createdAt time.Time,
) (*Unit, error) {
	if !state.IsValid() {
		return nil, ErrInvalidState
	}

	u := &Unit{
		id:           id,
		productID:    productID,
		serialNumber: serialNumber,
		secret:       secret,
		state:        state,
		orderID:      orderID,
		claimedAt:    claimedAt,
		soldAt:       soldAt,
		expiresAt:    expiresAt,
		createdAt:    createdAt,
	}
	if err := u.validateBinding(); err != nil {
		return nil, err
	}
	return u, nil
}

// validateBinding enforces: orderID is set if and only if the unit is
// claimed or sold.
func (u *Unit) validateBinding() error {
	bound := u.orderID != nil
	switch u.state {
	case StateAvailable:
		if bound {
			return ErrOrderBindingMismatch
		}
	case StateClaimed, StateSold:
		if !bound {
			return ErrOrderBindingMismatch
		}
	}
	return nil
}

func (u *Unit) IsAvailable() bool { return u.state == StateAvailable }
func (u *Unit) IsClaimed() bool   { return u.state == StateClaimed }
func (u *Unit) IsSold() bool      { return u.state == StateSold }

// ClaimExpired reports whether a claimed unit's hold has lapsed.
func (u *Unit) ClaimExpired(now time.Time) bool {
	return u.state == StateClaimed && u.expiresAt != nil && u.expiresAt.Before(now)
}

func (u *Unit) ID() uuid.UUID         { return u.id }
func (u *Unit) ProductID() uuid.UUID  { return u.productID }
func (u *Unit) SerialNumber() string  { return u.serialNumber }
func (u *Unit) Secret() string        { return u.secret }
func (u *Unit) State() State          { return u.state }
func (u *Unit) OrderID() *uuid.UUID   { return u.orderID }
func (u *Unit) ClaimedAt() *time.Time { return u.claimedAt }
func (u *Unit) SoldAt() *time.Time    { return u.soldAt }
func (u *Unit) ExpiresAt() *time.Time { return u.expiresAt }
func (u *Unit) CreatedAt() time.Time  { return u.createdAt }
