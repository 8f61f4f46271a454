// Package repository holds what the per-entity repositories share.
package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by every repository when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// NewContext derives a bounded context for a single database call.
func NewContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}
