package service

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	orderNumberPrefix    = "ORD"
	purchaseNumberPrefix = "PRCH"

	// Attempts at regenerating a document number after a unique-constraint
	// collision before giving up.
	maxNumberAttempts = 3
)

// generateDocumentNumber builds a human-readable document number:
// prefix + YYMMDD + 4 random digits, e.g. ORD2509011234. The random suffix
// can collide; callers retry on the storage-level uniqueness violation.
func generateDocumentNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%s%04d", prefix, now.Format("060102"), rand.IntN(10000))
}
