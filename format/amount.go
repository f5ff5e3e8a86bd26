// Package format converts between user-entered text and money values and
// renders values for display in the id-ID locale.
package format

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// SanitizeDigits drops every character that is not an ASCII digit, so
// "Rp 100.000.000" becomes "100000000".
func SanitizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// ParseAmount reads a whole-rupiah amount from formatted text. Text without
// digits is zero.
func ParseAmount(s string) decimal.Decimal {
	digits := SanitizeDigits(s)
	if digits == "" {
		return decimal.Zero
	}
	return decimal.RequireFromString(digits)
}

// Amount is a money value decoded from either a JSON number or a formatted
// JSON string.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Decimal = ParseAmount(s)
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
