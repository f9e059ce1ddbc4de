package generator

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Digits returns n random decimal digits as a string.
func Digits(rnd *rand.Rand, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rnd.Intn(10)))
	}
	return b.String()
}

// EAN13 generates a 13-digit account number with a valid EAN check digit.
func EAN13(rnd *rand.Rand) string {
	digits := make([]int, 12)
	sum := 0
	var b strings.Builder
	for i := range digits {
		digits[i] = rnd.Intn(10)
		if i%2 == 0 {
			sum += digits[i]
		} else {
			sum += 3 * digits[i]
		}
		b.WriteByte(byte('0' + digits[i]))
	}
	check := (10 - sum%10) % 10
	b.WriteByte(byte('0' + check))
	return b.String()
}

// EAN8 generates an 8-digit code with a valid EAN check digit; used for
// resource name suffixes.
func EAN8(rnd *rand.Rand) string {
	digits := make([]int, 7)
	sum := 0
	var b strings.Builder
	for i := range digits {
		digits[i] = rnd.Intn(10)
		if i%2 == 0 {
			sum += 3 * digits[i]
		} else {
			sum += digits[i]
		}
		b.WriteByte(byte('0' + digits[i]))
	}
	check := (10 - sum%10) % 10
	b.WriteByte(byte('0' + check))
	return b.String()
}

// LineItemID returns a fresh 40-hex-char identifier, one per row.
func LineItemID() string {
	u := uuid.New()
	hex := strings.ReplaceAll(u.String(), "-", "")
	return hex + hex[:8]
}

// UpperString returns n random uppercase ASCII letters/digits, used for
// product SKUs.
func UpperString(rnd *rand.Rand, n int) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rnd.Intn(len(alphabet))])
	}
	return b.String()
}

// Uniform samples a decimal uniformly from [low, high) with the given number
// of fractional digits.
func Uniform(rnd *rand.Rand, low, high float64, places int32) decimal.Decimal {
	v := low + rnd.Float64()*(high-low)
	return decimal.NewFromFloat(v).Round(places)
}

// Choice picks one option from a non-empty list.
func Choice(rnd *rand.Rand, options []string) string {
	return options[rnd.Intn(len(options))]
}

// GenerateAccounts produces the payer account and the usage account set for a
// run. The payer is always the first usage account; the identifiers are
// shared read-only across every generator and month of one invocation.
func GenerateAccounts(rnd *rand.Rand) (string, []string) {
	payer := EAN13(rnd)
	usage := []string{payer, EAN13(rnd), EAN13(rnd), EAN13(rnd), EAN13(rnd)}
	return payer, usage
}

// FormatDecimal renders an amount with at least one fractional digit, so a
// pinned 100 x 0.05 serializes as "5.0" rather than "5". Downstream fixtures
// compare these strings byte-for-byte.
func FormatDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
