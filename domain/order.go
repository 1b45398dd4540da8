package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPendingPayment     OrderStatus = "PENDING_PAYMENT"
	StatusPaid               OrderStatus = "PAID"
	StatusDelivered          OrderStatus = "DELIVERED"
	StatusCancelledRestocked OrderStatus = "CANCELLED_RESTOCKED"
)

// Terminal reports whether no further transitions exist out of s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelledRestocked
}

// CanTransitionTo reports whether the status change s -> next is legal:
//
//	PENDING_PAYMENT -> PAID -> DELIVERED
//	PENDING_PAYMENT -> CANCELLED_RESTOCKED
//	PAID            -> CANCELLED_RESTOCKED
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusPendingPayment:
		return next == StatusPaid || next == StatusCancelledRestocked
	case StatusPaid:
		return next == StatusDelivered || next == StatusCancelledRestocked
	default:
		return false
	}
}

// Order is one entry in the order ledger. Line items and the total are
// snapshots taken at creation time; later catalog changes never touch
// an existing order.
type Order struct {
	ID        string          `json:"order_id"`
	Time      time.Time       `json:"time"`
	Customer  string          `json:"customer"`
	UserID    string          `json:"user_id"`
	Items     map[string]int  `json:"items"`
	Status    OrderStatus     `json:"status"`
	Total     decimal.Decimal `json:"total_usd"`
	AdminNote string          `json:"admin_note"`
}

// CloneItems returns an independent copy of the line item map.
func (o Order) CloneItems() map[string]int {
	out := make(map[string]int, len(o.Items))
	for id, qty := range o.Items {
		out[id] = qty
	}
	return out
}
