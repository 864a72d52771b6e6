// Package alias generates random short aliases for links created without an
// explicit one.
package alias

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"snipurl-platform/internal/store"
)

const (
	// Charset is lowercase-alphanumeric; generated aliases are easy to read
	// aloud and never collide with the reserved-word list.
	Charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	// Length of generated aliases.
	Length = 6
	// MaxAttempts bounds the collision-retry loop.
	MaxAttempts = 5
)

// ErrGenerationExhausted is returned when every candidate collided.
var ErrGenerationExhausted = errors.New("could not generate a unique alias")

type Generator struct {
	links store.LinkStore
}

func NewGenerator(links store.LinkStore) *Generator {
	return &Generator{links: links}
}

// Generate returns a random alias that did not exist in the store at check
// time. The final uniqueness guarantee still comes from the store's atomic
// insert; this loop only keeps the collision probability negligible.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		candidate, err := randomString(Length)
		if err != nil {
			return "", fmt.Errorf("alias generation: %w", err)
		}

		exists, err := g.links.AliasExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrGenerationExhausted
}

func randomString(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(Charset))))
		if err != nil {
			return "", err
		}
		b[i] = Charset[num.Int64()]
	}
	return string(b), nil
}
