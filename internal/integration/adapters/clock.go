// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
)

type systemClock struct{}

// NewSystemClock returns a clock reading the local wall time.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

type uuidGenerator struct{}

// NewIDGenerator returns a generator of UUIDv7 identifiers, which sort by creation time.
func NewIDGenerator() adapter.IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUIDv7: %w", err)
	}
	return id.String(), nil
}
