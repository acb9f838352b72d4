package order

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"orderprocessing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one requested product line, before it becomes an Item.
type Line struct {
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// Rules holds the configured limits applied when an order is created.
// Orders that already exist are never re-checked against new limits.
type Rules struct {
	maxItemQuantity  int
	maxItemsPerOrder int

	isConstructed bool
}

// NewRules validates that both limits are positive.
//
// Example:
//
//	rules, err := order.NewRules(100, 10)
//	if err != nil {
//	    return fmt.Errorf("order rules: %w", err)
//	}
func NewRules(maxItemQuantity, maxItemsPerOrder int) (Rules, error) {
	if err := errors.Join(
		checkLimit("maxItemQuantity", maxItemQuantity),
		checkLimit("maxItemsPerOrder", maxItemsPerOrder),
	); err != nil {
		return Rules{}, err
	}

	return Rules{
		maxItemQuantity:  maxItemQuantity,
		maxItemsPerOrder: maxItemsPerOrder,
		isConstructed:    true,
	}, nil
}

func checkLimit(name string, value int) error {
	if value < 1 {
		return errs.NewValueIsOutOfRangeError(name, value, 1, math.MaxInt32)
	}
	return nil
}

// Validate ensures the Rules value was built by NewRules.
func (r Rules) Validate() error {
	if !r.isConstructed {
		return ErrRulesIsNotConstructed
	}
	return nil
}

// MaxItemQuantity is the inclusive upper bound of an item quantity.
func (r Rules) MaxItemQuantity() int {
	return r.maxItemQuantity
}

// MaxItemsPerOrder is the inclusive upper bound of the number of items.
func (r Rules) MaxItemsPerOrder() int {
	return r.maxItemsPerOrder
}

// Check applies the creation rules in order and returns the first violation
// as an *InvalidOrderError:
//
//  1. the list is not empty
//  2. the list has at most MaxItemsPerOrder lines
//  3. for each line in turn: quantity in [1, MaxItemQuantity], price > 0,
//     non-blank product name
func (r Rules) Check(lines []Line) error {
	if err := r.Validate(); err != nil {
		return err
	}

	if len(lines) == 0 {
		return newInvalidOrderError(
			"order must contain at least one item",
			errs.NewValueIsRequiredError("items"),
		)
	}

	if len(lines) > r.maxItemsPerOrder {
		return newInvalidOrderError(
			fmt.Sprintf("an order cannot contain more than %d items", r.maxItemsPerOrder),
			errs.NewValueIsOutOfRangeError("items", len(lines), 1, r.maxItemsPerOrder),
		)
	}

	for _, line := range lines {
		if err := r.checkLine(line); err != nil {
			return err
		}
	}

	return nil
}

func (r Rules) checkLine(line Line) error {
	if line.Quantity < 1 || line.Quantity > r.maxItemQuantity {
		return newInvalidOrderError(
			fmt.Sprintf("item quantity must be between 1 and %d", r.maxItemQuantity),
			errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, r.maxItemQuantity),
		)
	}

	if !line.Price.IsPositive() {
		return newInvalidOrderError(
			"item price must be greater than zero",
			errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", line.Price)),
		)
	}

	if strings.TrimSpace(line.ProductName) == "" {
		return newInvalidOrderError(
			"item product name is required",
			errs.NewValueIsRequiredError("productName"),
		)
	}

	return nil
}
