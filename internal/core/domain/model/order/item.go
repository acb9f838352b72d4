package order

import (
	"errors"
	"fmt"
	"strings"

	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one product line of an order. Items never change after the order
// is created, so Item is handled by value.
type Item struct {
	id          kernel.UUID
	productName string
	quantity    int
	price       decimal.Decimal
}

func newItem(line Line) Item {
	return Item{
		id:          kernel.NewUUID(),
		productName: line.ProductName,
		quantity:    line.Quantity,
		price:       line.Price,
	}
}

// RestoreItem rebuilds a persisted item. Only structural checks run here;
// the quantity limit may have changed since the order was created.
func RestoreItem(id kernel.UUID, productName string, quantity int, price decimal.Decimal) (Item, error) {
	var priceErr error
	if !price.IsPositive() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}

	var quantityErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	var nameErr error
	if strings.TrimSpace(productName) == "" {
		nameErr = errs.NewValueIsRequiredError("productName")
	}

	if err := errors.Join(id.Validate(), nameErr, quantityErr, priceErr); err != nil {
		return Item{}, err
	}

	return Item{
		id:          id,
		productName: productName,
		quantity:    quantity,
		price:       price,
	}, nil
}

func (i Item) ID() kernel.UUID {
	return i.id
}

func (i Item) ProductName() string {
	return i.productName
}

func (i Item) Quantity() int {
	return i.quantity
}

// Price is the unit price.
func (i Item) Price() decimal.Decimal {
	return i.price
}
