package id

import "github.com/google/uuid"

// New creates an opaque unique identifier for a stored document.
//
// UUIDv4 carries 122 bits of randomness, so collisions are negligible and the
// service never has to check whether a freshly generated id already exists.
func New() string {
	return uuid.NewString()
}
