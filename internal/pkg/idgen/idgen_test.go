package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/chargen/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID()

	first := gen.Generate()
	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.True(t, idgen.ValidKey(first))
	assert.NotEqual(t, first, gen.Generate())
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("char")
	assert.Equal(t, "char_1", gen.Generate())
	assert.Equal(t, "char_2", gen.Generate())
	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}

func TestSequentialGeneratorConcurrent(t *testing.T) {
	gen := idgen.NewSequential("")

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := gen.Generate()
			mu.Lock()
			seen[key] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}

func TestValidKey(t *testing.T) {
	testCases := []struct {
		key   string
		valid bool
	}{
		{"char_1", true},
		{"3f2b6c1e-8a5d-4e4f-9b1a-2c3d4e5f6a7b", true},
		{"", false},
		{"../etc/passwd", false},
		{"has space", false},
		{"slash/key", false},
		{"k%20", false},
		{strings.Repeat("a", idgen.MaxKeyLength), true},
		{strings.Repeat("a", idgen.MaxKeyLength+1), false},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			assert.Equal(t, tc.valid, idgen.ValidKey(tc.key))
		})
	}
}
