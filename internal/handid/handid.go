// Package handid generates unique hand identifiers.
package handid

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator produces hand ids as canonical UUID strings
type Generator struct {
	reader io.Reader
}

// NewGenerator creates a generator. A nil source uses crypto/rand.
func NewGenerator(src RandSource) *Generator {
	if src == nil {
		return &Generator{reader: rand.Reader}
	}
	return &Generator{reader: sourceReader{src: src}}
}

// Generate returns a new random (version 4) UUID string
func (g *Generator) Generate() string {
	id, err := uuid.NewRandomFromReader(g.reader)
	if err != nil {
		panic("handid: failed to generate random bytes: " + err.Error())
	}
	return id.String()
}

// Generate returns a hand id from crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Short returns the first eight characters of an id, as shown in narration
func Short(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Validate checks that id parses as a UUID
func Validate(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid hand id %q: %w", id, err)
	}
	return nil
}

type sourceReader struct {
	src RandSource
}

func (r sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.IntN(256))
	}
	return len(p), nil
}
