package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Match scoring weights and tolerances. The score is an additive weighted
// sum over amount, date, reference and description similarity, capped at 1.
const (
	// AutoMatchThreshold is the minimum score accepted by auto-reconciliation.
	AutoMatchThreshold = 0.8

	// ManualAmountTolerance is the maximum relative amount difference a
	// manual match will accept.
	ManualAmountTolerance = 0.10

	// ManualDateToleranceDays is the maximum date difference in days a
	// manual match will accept.
	ManualDateToleranceDays = 7
)

// amountNearTolerance is the absolute difference still treated as a near
// match, one currency unit.
var amountNearTolerance = decimal.NewFromInt(1)

// MatchScore rates how likely a bank transaction and a payment describe the
// same money movement. Result is in [0, 1].
//
// Amount contributes up to 0.40, date up to 0.30, reference up to 0.20 and
// description keyword overlap up to 0.10.
func MatchScore(tx *BankTransaction, payment *Payment) float64 {
	score := 0.0

	// Amount (0.40)
	amountDiff := tx.Amount().Sub(payment.Amount).Abs()
	onePercent := payment.Amount.Mul(decimal.NewFromFloat(0.01))

	switch {
	case amountDiff.IsZero():
		score += 0.4
	case amountDiff.LessThanOrEqual(amountNearTolerance):
		score += 0.3
	case amountDiff.LessThanOrEqual(onePercent):
		score += 0.2
	}

	// Date (0.30)
	switch days := dateDiffDays(tx.Date, payment.PaymentDate); {
	case days == 0:
		score += 0.3
	case days <= 1:
		score += 0.2
	case days <= 3:
		score += 0.1
	}

	// Reference (0.20)
	if tx.ReferenceNumber != "" && payment.ReferenceNumber != "" {
		switch {
		case tx.ReferenceNumber == payment.ReferenceNumber:
			score += 0.2
		case strings.Contains(tx.ReferenceNumber, payment.ReferenceNumber),
			strings.Contains(payment.ReferenceNumber, tx.ReferenceNumber):
			score += 0.1
		}
	}

	// Description keyword overlap (0.10)
	if payment.Notes != "" && tx.Description != "" {
		score += 0.1 * wordOverlap(payment.Notes, tx.Description)
	}

	if score > 1.0 {
		score = 1.0
	}

	return score
}

// ValidateManualMatch checks the looser tolerances applied to an operator
// pairing a transaction with a payment by hand.
func ValidateManualMatch(tx *BankTransaction, payment *Payment) error {
	amountDiff := tx.Amount().Sub(payment.Amount).Abs()
	maxDiff := payment.Amount.Mul(decimal.NewFromFloat(ManualAmountTolerance))

	if amountDiff.GreaterThan(maxDiff) {
		return ErrAmountDiffTooLarge
	}

	if dateDiffDays(tx.Date, payment.PaymentDate) > ManualDateToleranceDays {
		return ErrDateDiffTooLarge
	}

	return nil
}

// dateDiffDays is the absolute calendar-day distance between two dates.
func dateDiffDays(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	days := int(ad.Sub(bd).Hours() / 24)
	if days < 0 {
		days = -days
	}

	return days
}

// wordOverlap is |common words| / max(|wordsA|, |wordsB|), in [0, 1].
func wordOverlap(a, b string) float64 {
	wordsA := splitWords(a)
	wordsB := splitWords(b)

	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	common := 0
	for word := range wordsB {
		if wordsA[word] {
			common++
		}
	}

	max := len(wordsA)
	if len(wordsB) > max {
		max = len(wordsB)
	}

	return float64(common) / float64(max)
}

func splitWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		words[w] = true
	}

	return words
}
