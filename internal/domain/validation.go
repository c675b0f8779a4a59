package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountCode  = errors.New("invalid account code")
	ErrInvalidAccountName  = errors.New("invalid account name")
	ErrInvalidAccountLevel = errors.New("invalid account level")
	ErrAmountTooLarge      = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountLevel      = 1
	MaxAccountLevel      = 5
	MaxEntryAmount       = "999999999999" // matches NUMERIC(15,2) columns
)

// Account codes are hierarchical, e.g. 1112-01.
var accountCodePattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ValidateAccountCode checks the NNNN-NN code shape.
func ValidateAccountCode(code string) error {
	if !accountCodePattern.MatchString(code) {
		return fmt.Errorf("%w: %q does not match NNNN-NN", ErrInvalidAccountCode, code)
	}

	return nil
}

// ValidateAccountName checks name presence and length.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateAccountLevel checks the hierarchy depth.
func ValidateAccountLevel(level int) error {
	if level < MinAccountLevel || level > MaxAccountLevel {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidAccountLevel, level, MinAccountLevel, MaxAccountLevel)
	}

	return nil
}

// ValidateAmount checks a monetary amount is positive and storable.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxEntryAmount)
	}

	return nil
}
