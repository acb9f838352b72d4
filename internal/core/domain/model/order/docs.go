// Package order provides the Order aggregate of the order processing service:
// creation under configurable rules, the fulfillment state machine and the
// events recorded when an order changes status.
//
// The package includes:
//   - Order: the aggregate root owning identity, creation time, status and items
//   - Item: an immutable product line (name, quantity, unit price)
//   - Rules: the configured item and quantity limits checked at creation
//   - Status: the closed set of lifecycle stages and their legal transitions
//   - StatusChangedEvent: the record of a single status change
//
// Key business rules:
//   - An order has between 1 and MaxItemsPerOrder items
//   - Each item has a quantity in [1, MaxItemQuantity], a positive price and a name
//   - Status follows Pending -> Processing -> Shipped -> Delivered
//   - Only Pending orders can be cancelled; Delivered and Cancelled are final
//   - Orders are never deleted
package order
