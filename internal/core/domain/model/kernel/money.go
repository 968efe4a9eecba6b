package kernel

import (
	"fmt"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// Money is a monetary amount in integer pence. Arithmetic on pence avoids
// floating-point rounding in pricing calculations.
type Money int64

// NewMoney creates a non-negative Money value.
// Negative amounts return a ValueIsInvalidError.
func NewMoney(pence int64) (Money, error) {
	if pence < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", pence))
	}
	return Money(pence), nil
}

// Pence returns the amount in pence.
func (m Money) Pence() int64 {
	return int64(m)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// MultiplyBy returns the amount multiplied by a non-negative quantity.
func (m Money) MultiplyBy(quantity int) Money {
	return m * Money(quantity)
}

// String formats the amount as pounds, e.g. "£12.34".
func (m Money) String() string {
	return fmt.Sprintf("£%d.%02d", m/100, m%100)
}
