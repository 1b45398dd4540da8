// Package domain defines core business types and interfaces.
package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CoverKind discriminates the cover union.
type CoverKind int

const (
	// CoverNone means the item has no cover reference.
	CoverNone CoverKind = iota
	// CoverInline means the cover is carried as raw bytes plus a MIME type.
	CoverInline
	// CoverURL means the cover is an external URL.
	CoverURL
)

// String returns the serialized name of the kind.
func (k CoverKind) String() string {
	switch k {
	case CoverInline:
		return "inline"
	case CoverURL:
		return "url"
	default:
		return "none"
	}
}

// Cover is a tagged union: at most one of the inline or URL variants is
// active, selected by Kind. Use the constructors rather than building
// the struct by hand.
type Cover struct {
	Kind  CoverKind
	URL   string
	Bytes []byte
	MIME  string
}

// NoCover returns the empty cover variant.
func NoCover() Cover { return Cover{Kind: CoverNone} }

// InlineCover returns a cover carried as raw bytes with its MIME type.
func InlineCover(data []byte, mime string) Cover {
	return Cover{Kind: CoverInline, Bytes: data, MIME: mime}
}

// URLCover returns a cover referenced by external URL.
func URLCover(url string) Cover {
	return Cover{Kind: CoverURL, URL: url}
}

// MarshalJSON renders only the active variant; inline bytes are elided
// from display output.
func (c Cover) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CoverInline:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			MIME string `json:"mime"`
			Size int    `json:"size_bytes"`
		}{Kind: c.Kind.String(), MIME: c.MIME, Size: len(c.Bytes)})
	case CoverURL:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			URL  string `json:"url"`
		}{Kind: c.Kind.String(), URL: c.URL})
	default:
		return json.Marshal(struct {
			Kind string `json:"kind"`
		}{Kind: c.Kind.String()})
	}
}

// Item represents a catalog item with stock counts and a unit price.
type Item struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Owner             string          `json:"owner"`
	TotalQuantity     int             `json:"total_quantity"`
	AvailableQuantity int             `json:"available_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Cover             Cover           `json:"cover"`
}

// Sold reports how many units are currently out, derived from the gap
// between total and available, never negative.
func (i Item) Sold() int {
	sold := i.TotalQuantity - i.AvailableQuantity
	if sold < 0 {
		return 0
	}
	return sold
}

// IsAvailable reports whether at least one unit can be reserved.
func (i Item) IsAvailable() bool { return i.AvailableQuantity > 0 }
