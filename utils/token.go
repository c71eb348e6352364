package utils

import "github.com/google/uuid"

// GenerateSessionToken returns a new opaque, unguessable client identifier.
func GenerateSessionToken() string {
	return uuid.NewString()
}
