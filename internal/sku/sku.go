// Package sku draws product codes of the form PPP-NNNNSSS.
package sku

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// DefaultFallbackPrefix is used when no usable category name is given.
const DefaultFallbackPrefix = "PRD"

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator is safe for concurrent use. It does not check uniqueness.
type Generator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	fallback string
}

// NewGenerator seeds from the clock. An empty or malformed fallback falls back
// to DefaultFallbackPrefix.
func NewGenerator(fallback string) *Generator {
	seed := uint64(time.Now().UnixNano())
	return NewGeneratorWithSource(fallback, rand.NewPCG(seed, seed>>17|1))
}

// NewGeneratorWithSource is for deterministic tests.
func NewGeneratorWithSource(fallback string, src rand.Source) *Generator {
	fb := strings.ToUpper(strings.TrimSpace(fallback))
	if !isPrefix(fb) {
		fb = DefaultFallbackPrefix
	}
	return &Generator{rng: rand.New(src), fallback: fb}
}

// New returns a code prefixed by the first three characters of category.
func (g *Generator) New(category string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = letters[g.rng.IntN(len(letters))]
	}
	return fmt.Sprintf("%s-%04d%s", g.Prefix(category), g.rng.IntN(10000), suffix)
}

// Prefix is the upper-cased first three characters of category when they are
// ASCII letters, otherwise the fallback prefix.
func (g *Generator) Prefix(category string) string {
	runes := []rune(strings.ToUpper(strings.TrimSpace(category)))
	if len(runes) >= 3 {
		if p := string(runes[:3]); isPrefix(p) {
			return p
		}
	}
	return g.fallback
}

// Variant appends a two-digit sequence to a base code.
func Variant(base string, seq int) string {
	return fmt.Sprintf("%s-%02d", base, seq)
}

func isPrefix(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
