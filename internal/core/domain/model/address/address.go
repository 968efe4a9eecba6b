// Package address contains the delivery Address entity: the snapshot of
// where an order is delivered, captured at order creation time.
package address

import (
	"errors"
	"strings"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not
// created through NewAddress or RestoreAddress.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress or RestoreAddress")

// Address is a delivery destination owned by a customer. It is immutable
// once created; orders reference it by ID.
type Address struct {
	id         kernel.UUID
	customerID kernel.UUID
	line       string
	postcode   string
	location   kernel.Location

	isConstructed bool
}

// NewAddress creates a validated delivery address.
func NewAddress(id, customerID kernel.UUID, line, postcode string, location kernel.Location) (*Address, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		location.Validate(),
	); err != nil {
		return nil, err
	}
	if strings.TrimSpace(line) == "" {
		return nil, errs.NewValueIsRequiredError("line")
	}
	if strings.TrimSpace(postcode) == "" {
		return nil, errs.NewValueIsRequiredError("postcode")
	}

	return &Address{
		id:            id,
		customerID:    customerID,
		line:          line,
		postcode:      postcode,
		location:      location,
		isConstructed: true,
	}, nil
}

// RestoreAddress reconstructs an address from persistence.
func RestoreAddress(id, customerID kernel.UUID, line, postcode string, location kernel.Location) (*Address, error) {
	return NewAddress(id, customerID, line, postcode, location)
}

// Validate ensures the Address was created through a constructor.
func (a *Address) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

// ID returns the address's unique identifier.
func (a *Address) ID() kernel.UUID { return a.id }

// CustomerID returns the owning customer's identifier.
func (a *Address) CustomerID() kernel.UUID { return a.customerID }

// Line returns the street line.
func (a *Address) Line() string { return a.line }

// Postcode returns the postcode.
func (a *Address) Postcode() string { return a.postcode }

// Location returns the geographic coordinates.
func (a *Address) Location() kernel.Location { return a.location }
