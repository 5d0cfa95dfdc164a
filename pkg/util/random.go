package util

import (
	"fmt"
	"math/rand"
)

// RandomDisplayName appends a random numeric suffix to a base name so
// generated accounts (seed data) get distinguishable names.
func RandomDisplayName(base string) string {
	return fmt.Sprintf("%s%04d", base, rand.Intn(10000))
}
