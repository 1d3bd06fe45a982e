// Package idgen generates character keys
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// MaxKeyLength bounds keys accepted from callers
const MaxKeyLength = 64

// Generator generates unique character keys
type Generator interface {
	Generate() string
}

// UUIDGenerator generates random (v4) UUID keys. Keys appear in wizard URLs,
// so they are never prefixed.
type UUIDGenerator struct{}

// NewUUID creates a new UUID generator
func NewUUID() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate creates a new UUID key
func (g *UUIDGenerator) Generate() string {
	return uuid.New().String()
}

// SequentialGenerator generates predictable keys for tests
type SequentialGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequential creates a sequential generator. Keys look like prefix_1,
// or just 1 when prefix is empty.
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates the next key
func (g *SequentialGenerator) Generate() string {
	n := g.counter.Add(1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// ValidKey reports whether key is safe to use as a URL path segment and a
// storage key: 1 to MaxKeyLength letters, digits, '-' or '_'.
func ValidKey(key string) bool {
	if key == "" || len(key) > MaxKeyLength {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
