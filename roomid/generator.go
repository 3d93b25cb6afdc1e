// Package roomid names the communication channel of a session.
package roomid

import (
	"fmt"

	"github.com/google/uuid"
)

// Prefix keeps generated identifiers recognizable in logs and store keys.
const Prefix = "Room-"

// UUIDGenerator derives room identifiers from random UUIDs. Collisions are
// avoided by construction; the store still enforces uniqueness at creation
// and the caller must treat a collision as an error, never proceed on it.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) Generate() string {
	return fmt.Sprintf("%s%s", Prefix, uuid.NewString())
}
