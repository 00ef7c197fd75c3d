package minibank

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Account is one registered account holder. The normalized name is the
// primary key across the registry. PINDigest holds the one-way hash of the
// confirmed PIN; plaintext is never stored.
type Account struct {
	Name      string
	PINDigest string
	Balance   decimal.Decimal
	Age       int
	VIP       bool
}

type Gender int

const (
	GenderUnspecified Gender = iota
	GenderMale
	GenderFemale
	GenderOther
)

// Honorific returns the greeting title for the gender, empty for
// GenderOther and GenderUnspecified.
func (g Gender) Honorific() string {
	switch g {
	case GenderMale:
		return "Mr."
	case GenderFemale:
		return "Ms."
	default:
		return ""
	}
}

// NormalizeName trims and title-cases a claimed name so that lookups and
// uniqueness checks are case-insensitive.
func NormalizeName(name string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

// ValidatePIN enforces the PIN format: digits only, at least min long.
func ValidatePIN(pin string, min int) error {
	if len(pin) < min {
		return ErrValidation{Fields: map[string]string{
			"pin": "must be at least " + strconv.Itoa(min) + " digits long",
		}}
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrValidation{Fields: map[string]string{"pin": "must contain only digits"}}
		}
	}
	return nil
}

// ParseGender maps an M/F/O answer to a Gender.
func ParseGender(s string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M":
		return GenderMale, nil
	case "F":
		return GenderFemale, nil
	case "O":
		return GenderOther, nil
	}
	return GenderUnspecified, ErrValidation{Fields: map[string]string{"gender": "must be M, F, or O"}}
}

// ParseAge parses a claimed age; it must be a positive integer.
func ParseAge(s string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrValidation{Fields: map[string]string{"age": "must be a number"}}
	}
	if age <= 0 {
		return 0, ErrValidation{Fields: map[string]string{"age": "must be positive"}}
	}
	return age, nil
}

// ParseAmount parses a monetary amount. Sign and balance checks belong to
// the ledger; this only rejects non-numeric input.
func ParseAmount(s string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrValidation{Fields: map[string]string{"amount": "must be a number"}}
	}
	return amt, nil
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders an amount with two decimals and thousands grouping,
// e.g. 1234.5 -> "1,234.50".
func FormatAmount(d decimal.Decimal) string {
	return amountPrinter.Sprintf("%.2f", d.InexactFloat64())
}
