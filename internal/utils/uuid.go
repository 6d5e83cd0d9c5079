package utils

import "github.com/google/uuid"

// UUIDGenerator produces trace IDs for pull runs and origin requests.
type UUIDGenerator struct {
	newV7 func() (uuid.UUID, error)
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{newV7: uuid.NewV7}
}

// Generate returns a time-ordered UUIDv7. When the v7 source fails a random
// v4 is returned instead; a trace ID is never empty.
func (g *UUIDGenerator) Generate() string {
	id, err := g.newV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
