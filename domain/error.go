// Package domain defines error types for the shop ledger.
package domain

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when an item or order with the given ID is not found
type NotFoundError struct {
	Kind string // "item" or "order"
	ID   string
}

// Error implements the error interface for NotFoundError
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: id=%s", e.Kind, e.ID)
}

// Is allows proper error type checking with errors.Is()
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// InvalidArgumentError is returned when operation input validation fails
type InvalidArgumentError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidArgumentError
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidArgumentError) Is(target error) bool {
	_, ok := target.(*InvalidArgumentError)
	return ok
}

// InsufficientStockError is returned when a reservation exceeds availability
type InsufficientStockError struct {
	ItemID    string
	Requested int
	Available int
}

// Error implements the error interface for InsufficientStockError
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: item=%s, requested=%d, available=%d", e.ItemID, e.Requested, e.Available)
}

// Is allows proper error type checking with errors.Is()
func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

// InvalidTransitionError is returned when an illegal order status change is attempted
type InvalidTransitionError struct {
	OrderID string
	From    OrderStatus
	To      OrderStatus
}

// Error implements the error interface for InvalidTransitionError
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: order=%s, from=%s, to=%s", e.OrderID, e.From, e.To)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidTransitionError) Is(target error) bool {
	_, ok := target.(*InvalidTransitionError)
	return ok
}

// Helper functions for creating errors with context

// NewItemNotFoundError creates a NotFoundError for a catalog item
func NewItemNotFoundError(id string) error {
	return &NotFoundError{Kind: "item", ID: id}
}

// NewOrderNotFoundError creates a NotFoundError for a ledger order
func NewOrderNotFoundError(id string) error {
	return &NotFoundError{Kind: "order", ID: id}
}

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(field, reason string, value interface{}) error {
	return &InvalidArgumentError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(itemID string, requested, available int) error {
	return &InsufficientStockError{ItemID: itemID, Requested: requested, Available: available}
}

// NewInvalidTransitionError creates a new InvalidTransitionError
func NewInvalidTransitionError(orderID string, from, to OrderStatus) error {
	return &InvalidTransitionError{OrderID: orderID, From: from, To: to}
}

// Type assertion helpers for use with errors.As()

// IsNotFoundError checks if an error is a NotFoundError
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInvalidArgumentError checks if an error is an InvalidArgumentError
func IsInvalidArgumentError(err error) bool {
	var ia *InvalidArgumentError
	return errors.As(err, &ia)
}

// IsInsufficientStockError checks if an error is an InsufficientStockError
func IsInsufficientStockError(err error) bool {
	var is *InsufficientStockError
	return errors.As(err, &is)
}

// IsInvalidTransitionError checks if an error is an InvalidTransitionError
func IsInvalidTransitionError(err error) bool {
	var it *InvalidTransitionError
	return errors.As(err, &it)
}
