package order_test

import (
	"testing"

	"orderprocessing/internal/core/domain/model/order"
	"orderprocessing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRules(t *testing.T) order.Rules {
	t.Helper()

	rules, err := order.NewRules(100, 10)
	require.NoError(t, err)
	return rules
}

func laptop(quantity int) order.Line {
	return order.Line{ProductName: "Laptop", Quantity: quantity, Price: decimal.NewFromInt(50000)}
}

func linesOf(n int) []order.Line {
	lines := make([]order.Line, n)
	for i := range lines {
		lines[i] = laptop(1)
	}
	return lines
}

func TestNewRules(t *testing.T) {
	t.Run("should keep positive limits", func(t *testing.T) {
		rules, err := order.NewRules(100, 10)

		require.NoError(t, err)
		require.NoError(t, rules.Validate())
		assert.Equal(t, 100, rules.MaxItemQuantity())
		assert.Equal(t, 10, rules.MaxItemsPerOrder())
	})

	t.Run("should reject non-positive limits", func(t *testing.T) {
		_, err := order.NewRules(0, -1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "maxItemQuantity")
		assert.Contains(t, err.Error(), "maxItemsPerOrder")
	})

	t.Run("zero value is not usable", func(t *testing.T) {
		var rules order.Rules

		assert.Equal(t, order.ErrRulesIsNotConstructed, rules.Validate())
		assert.Equal(t, order.ErrRulesIsNotConstructed, rules.Check(linesOf(1)))
	})
}

func TestRules_Check(t *testing.T) {
	rules := newTestRules(t)

	tests := []struct {
		name   string
		lines  []order.Line
		reason string
		cause  error
	}{
		{
			name:   "empty list",
			lines:  nil,
			reason: "order must contain at least one item",
			cause:  errs.ErrValueIsRequired,
		},
		{
			name:   "too many items",
			lines:  linesOf(11),
			reason: "an order cannot contain more than 10 items",
			cause:  errs.ErrValueIsOutOfRange,
		},
		{
			name:   "quantity zero",
			lines:  []order.Line{laptop(0)},
			reason: "item quantity must be between 1 and 100",
			cause:  errs.ErrValueIsOutOfRange,
		},
		{
			name:   "quantity above limit",
			lines:  []order.Line{laptop(101)},
			reason: "item quantity must be between 1 and 100",
			cause:  errs.ErrValueIsOutOfRange,
		},
		{
			name:   "negative quantity",
			lines:  []order.Line{laptop(-3)},
			reason: "item quantity must be between 1 and 100",
			cause:  errs.ErrValueIsOutOfRange,
		},
		{
			name:   "zero price",
			lines:  []order.Line{{ProductName: "Mouse", Quantity: 1, Price: decimal.Zero}},
			reason: "item price must be greater than zero",
			cause:  errs.ErrValueIsInvalid,
		},
		{
			name:   "negative price",
			lines:  []order.Line{{ProductName: "Mouse", Quantity: 1, Price: decimal.RequireFromString("-0.01")}},
			reason: "item price must be greater than zero",
			cause:  errs.ErrValueIsInvalid,
		},
		{
			name:   "blank product name",
			lines:  []order.Line{{ProductName: "  ", Quantity: 1, Price: decimal.NewFromInt(1)}},
			reason: "item product name is required",
			cause:  errs.ErrValueIsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.Check(tt.lines)

			require.ErrorIs(t, err, order.ErrInvalidOrder)
			require.ErrorIs(t, err, tt.cause)

			var invalid *order.InvalidOrderError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.reason, invalid.Reason)
			assert.Equal(t, tt.reason, err.Error())
		})
	}
}

func TestRules_Check_Boundaries(t *testing.T) {
	rules := newTestRules(t)

	require.NoError(t, rules.Check([]order.Line{laptop(1)}))
	require.NoError(t, rules.Check([]order.Line{laptop(100)}))
	require.NoError(t, rules.Check(linesOf(10)))
	require.NoError(t, rules.Check([]order.Line{{
		ProductName: "Sticker",
		Quantity:    1,
		Price:       decimal.RequireFromString("0.0001"),
	}}))
}

func TestRules_Check_ReportsFirstViolation(t *testing.T) {
	rules := newTestRules(t)

	t.Run("count is checked before items", func(t *testing.T) {
		lines := linesOf(11)
		lines[0].Quantity = 0

		err := rules.Check(lines)

		assert.EqualError(t, err, "an order cannot contain more than 10 items")
	})

	t.Run("quantity is checked before price", func(t *testing.T) {
		err := rules.Check([]order.Line{{ProductName: "Laptop", Quantity: 1000, Price: decimal.Zero}})

		assert.EqualError(t, err, "item quantity must be between 1 and 100")
	})

	t.Run("items are checked in request order", func(t *testing.T) {
		lines := []order.Line{
			laptop(1),
			{ProductName: "Mouse", Quantity: 1, Price: decimal.NewFromInt(-5)},
			laptop(500),
		}

		err := rules.Check(lines)

		assert.EqualError(t, err, "item price must be greater than zero")
	})
}
