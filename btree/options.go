package btree

import (
	"fmt"

	"github.com/rs/zerolog"
)

const (
	// DefaultDegree is the minimum degree used when WithDegree is not given:
	// every non-root node holds 3..7 keys.
	DefaultDegree = 4
	// DefaultFreeListSize bounds how many released nodes are kept for reuse.
	DefaultFreeListSize = 32
)

type options struct {
	degree       int
	maxNodes     int
	freeListSize int
	logger       zerolog.Logger
}

// Option configures a Btree at construction time.
type Option func(*options)

func defaultOptions() options {
	return options{
		degree:       DefaultDegree,
		freeListSize: DefaultFreeListSize,
		logger:       zerolog.Nop(),
	}
}

// WithDegree sets the minimum degree m (m >= 2). Non-root nodes then hold
// between m-1 and 2m-1 keys.
func WithDegree(m int) Option {
	if m < 2 {
		panic(fmt.Sprintf("btree: minimum degree must be at least 2, got %d", m))
	}
	return func(o *options) {
		o.degree = m
	}
}

// WithMaxNodes caps the number of live nodes. Zero means unlimited.
func WithMaxNodes(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("btree: node budget must not be negative, got %d", n))
	}
	return func(o *options) {
		o.maxNodes = n
	}
}

// WithFreeListSize sets how many released nodes are cached for reuse.
func WithFreeListSize(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.freeListSize = n
	}
}

// WithLogger attaches a logger for structural events (root split, root
// collapse, exhausted node budget).
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
