package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ReferenceGenerator issues contract numbers and payment references of the
// form <prefix>-<epochMillis>-<6-char base36>. The random suffix avoids a
// shared mutable counter; the persistence layer's unique constraint catches
// the rare collision and the caller regenerates.
type ReferenceGenerator struct {
	now func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewReferenceGenerator creates a generator using the given clock.
func NewReferenceGenerator(now func() time.Time) *ReferenceGenerator {
	return &ReferenceGenerator{
		now: now,
		rnd: rand.New(rand.NewSource(now().UnixNano())),
	}
}

// ContractNumber returns a fresh MEQ-prefixed contract number.
func (g *ReferenceGenerator) ContractNumber() string {
	return g.generate("MEQ")
}

// PaymentReference returns a fresh PAY-prefixed payment reference.
func (g *ReferenceGenerator) PaymentReference() string {
	return g.generate("PAY")
}

func (g *ReferenceGenerator) generate(prefix string) string {
	g.mu.Lock()
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = base36Alphabet[g.rnd.Intn(len(base36Alphabet))]
	}
	g.mu.Unlock()

	return fmt.Sprintf("%s-%d-%s", prefix, g.now().UnixMilli(), suffix)
}
