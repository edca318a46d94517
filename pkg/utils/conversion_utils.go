package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseUUID converts a string into a uuid.UUID with a caller-friendly error.
func ParseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}
