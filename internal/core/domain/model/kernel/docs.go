// Package kernel holds the value objects shared by every aggregate of the
// order processing service. Today that is UUID, the identifier type used for
// orders, their items and outbox messages.
package kernel
