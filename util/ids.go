// Package util provides identifier generation for the shop ledger.
package util

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Sequence issues monotonically increasing ids with a fixed prefix,
// e.g. ORD-00001. Safe for concurrent use.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

// NewSequence constructs a Sequence that counts from 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next id in the sequence.
func (s *Sequence) Next() string {
	return fmt.Sprintf("%s%05d", s.prefix, s.n.Add(1))
}

// Seed advances the counter to n if it is currently behind, so restored
// state never reissues an id already on disk.
func (s *Sequence) Seed(n int64) {
	for {
		cur := s.n.Load()
		if n <= cur || s.n.CompareAndSwap(cur, n) {
			return
		}
	}
}

// NewUserID returns a random customer id of the form USR-xxxxxxxx.
func NewUserID() string {
	return "USR-" + uuid.NewString()[:8]
}
