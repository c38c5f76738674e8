package booking

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// BookingIDPrefix starts every booking id.
const BookingIDPrefix = "SV"

// IDGenerator hands out booking ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator derives ids from random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return BookingIDPrefix + strings.ToUpper(raw[:10])
}

// LegacyGenerator issues the short "SV" + 5 digit ids used by the demo data.
// Ids can collide.
type LegacyGenerator struct {
	Rand *rand.Rand
}

func (g LegacyGenerator) NewID() string {
	n := 0
	if g.Rand != nil {
		n = g.Rand.Intn(90000)
	} else {
		n = rand.Intn(90000)
	}
	return fmt.Sprintf("%s%d", BookingIDPrefix, n+10000)
}
