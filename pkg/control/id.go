package control

import "github.com/google/uuid"

// IDPrefix is prepended to generated identifiers.
const IDPrefix = "ctl-"

// NewID returns a fresh identifier for a control constructed without one.
func NewID() string {
	return IDPrefix + uuid.NewString()
}
