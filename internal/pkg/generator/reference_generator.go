package generator

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/girafadepapel/storefront-service/internal/pkg/clock"
)

// ReferenceGenerator produces the external references that correlate a
// checkout attempt, its gateway preference and the persisted payment record.
// Timestamp plus a random suffix; collisions are treated as negligible.
type ReferenceGenerator struct {
	clock clock.Clock
}

func NewReferenceGenerator(clk clock.Clock) *ReferenceGenerator {
	return &ReferenceGenerator{clock: clk}
}

func (g *ReferenceGenerator) GenerateOrderReference() string {
	var randomBytes [8]byte
	if _, err := rand.Read(randomBytes[:]); err != nil {
		return fmt.Sprintf("pedido_%d", g.clock.Now().UnixMilli())
	}
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(randomBytes[:]), 36)
	return fmt.Sprintf("pedido_%d_%s", g.clock.Now().UnixMilli(), suffix)
}

// NewItemID yields the opaque id assigned to a cart line when it is added.
func NewItemID() string {
	return uuid.NewString()
}

// NewEntityID yields ids for catalog rows created through the admin API.
func NewEntityID() string {
	return uuid.NewString()
}
