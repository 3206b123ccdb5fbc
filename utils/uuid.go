package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string, used for connection and request ids
func GenerateID() string {
	return uuid.New().String()
}
