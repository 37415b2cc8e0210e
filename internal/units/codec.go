// Package units converts between human decimal amounts ("12.3456") and the
// network's smallest integer unit using exact integer arithmetic.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Ether is the decimal exponent of the native currency.
const Ether = 18

// ErrInvalidValue is returned for malformed decimal amounts.
var ErrInvalidValue = errors.New("invalid value")

// ToSmallestUnit parses a decimal string and scales it by 10^exponent.
// Fractional digits beyond exponent are truncated.
func ToSmallestUnit(s string, exponent int) (*big.Int, error) {
	if exponent < 0 {
		return nil, fmt.Errorf("%w: negative exponent %d", ErrInvalidValue, exponent)
	}
	raw := strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(raw, "-"):
		neg = true
		raw = raw[1:]
	case strings.HasPrefix(raw, "+"):
		raw = raw[1:]
	}

	whole, frac, _ := strings.Cut(raw, ".")
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	if whole == "" {
		whole = "0"
	}

	if len(frac) > exponent {
		frac = frac[:exponent]
	}
	frac += strings.Repeat("0", exponent-len(frac))

	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

// ToDecimalString is the inverse of ToSmallestUnit. Trailing fractional
// zeros are stripped but one fractional digit is always kept.
func ToDecimalString(v *big.Int, exponent int) string {
	if v == nil {
		v = new(big.Int)
	}
	if exponent <= 0 {
		return v.String()
	}

	abs := new(big.Int).Abs(v)
	whole, rem := new(big.Int).QuoRem(abs, pow10(exponent), new(big.Int))

	frac := rem.String()
	frac = strings.Repeat("0", exponent-len(frac)) + frac
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		frac = "0"
	}

	sign := ""
	if v.Sign() < 0 {
		sign = "-"
	}
	return sign + whole.String() + "." + frac
}

// Normalize returns the canonical form of a decimal string, the one
// ToDecimalString produces.
func Normalize(s string, exponent int) (string, error) {
	n, err := ToSmallestUnit(s, exponent)
	if err != nil {
		return "", err
	}
	return ToDecimalString(n, exponent), nil
}

// ParseEther converts an ether amount to wei.
func ParseEther(s string) (*big.Int, error) { return ToSmallestUnit(s, Ether) }

// FormatEther converts wei to an ether amount.
func FormatEther(wei *big.Int) string { return ToDecimalString(wei, Ether) }

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func pow10(exp int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}
