package generator

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girafadepapel/storefront-service/internal/pkg/clock"
)

func TestGenerateOrderReferenceFormat(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	gen := NewReferenceGenerator(clk)

	reference := gen.GenerateOrderReference()

	pattern := regexp.MustCompile(`^pedido_1773144000000_[0-9a-z]+$`)
	assert.Regexp(t, pattern, reference)
}

func TestGenerateOrderReferenceUnique(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	gen := NewReferenceGenerator(clk)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		reference := gen.GenerateOrderReference()
		require.False(t, seen[reference], "duplicate reference %s", reference)
		seen[reference] = true
	}
}
