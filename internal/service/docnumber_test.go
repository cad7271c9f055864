package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDocumentNumber_Format(t *testing.T) {
	now := time.Date(2026, time.September, 1, 14, 30, 0, 0, time.UTC)

	number := generateDocumentNumber(orderNumberPrefix, now)
	assert.Len(t, number, len("ORD")+6+4)
	assert.Equal(t, "ORD260901", number[:9])
	assert.Regexp(t, `^ORD260901\d{4}$`, number)

	number = generateDocumentNumber(purchaseNumberPrefix, now)
	assert.Regexp(t, `^PRCH260901\d{4}$`, number)
}

func TestGenerateDocumentNumber_SuffixStaysFourDigits(t *testing.T) {
	now := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	// Small random suffixes must be zero-padded, not shortened.
	for i := 0; i < 200; i++ {
		number := generateDocumentNumber(orderNumberPrefix, now)
		assert.Len(t, number, 13)
	}
}
