// Package format holds display helpers shared by the CLI, the HTTP API and
// chat notifications.
package format

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// ShortenAddress abbreviates a hex address or hash as 0x1234…abcd
func ShortenAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// TokenAmount renders an integer amount of base units using decimals,
// grouping thousands and trimming trailing zeros: 1234500000 (6) -> "1,234.5".
// Whole parts beyond uint64 are printed without grouping.
func TokenAmount(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}

	neg := amount.Sign() < 0
	abs := new(big.Int).Abs(amount)

	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, unit, new(big.Int))

	out := whole.String()
	if whole.IsUint64() {
		out = printer.Sprintf("%d", whole.Uint64())
	}
	if decimals > 0 && frac.Sign() != 0 {
		fracStr := frac.String()
		fracStr = strings.Repeat("0", int(decimals)-len(fracStr)) + fracStr
		fracStr = strings.TrimRight(fracStr, "0")
		out += "." + fracStr
	}

	if neg {
		return "-" + out
	}
	return out
}

// Units is TokenAmount for uint64 amounts
func Units(amount uint64, decimals uint8) string {
	return TokenAmount(new(big.Int).SetUint64(amount), decimals)
}

// Number groups thousands: 1234567 -> "1,234,567"
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Percent renders a percentage with one decimal: 42.26 -> "42.3%"
func Percent(p float64) string {
	return printer.Sprintf("%.1f%%", p)
}

// DaysLeft returns the whole number of days from now until deadline,
// negative once the deadline has passed
func DaysLeft(now, deadline time.Time) int {
	d := deadline.Sub(now)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// Timestamp renders t in RFC 3339 UTC
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseUnits converts a human decimal amount into base units: "12.5" (6) -> 12500000
func ParseUnits(s string, decimals uint8) (uint64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > int(decimals) {
		return 0, fmt.Errorf("amount %s has more than %d decimals", s, decimals)
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))

	v, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok || v.Sign() < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("amount %s is too large", s)
	}
	return v.Uint64(), nil
}
