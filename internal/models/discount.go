package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Discount is a percentage as entered by the user. It decodes from a JSON
// number or string; anything that is not a non-negative integer coerces
// to its digits, or to 0 when there are none.
type Discount int

func (d *Discount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = ParseDiscount(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*d = 0
		return nil
	}
	if f < 0 || math.IsNaN(f) || f > math.MaxInt32 {
		*d = 0
		return nil
	}
	*d = Discount(int(f))
	return nil
}

// ParseDiscount strips every non-digit from s and parses the rest.
func ParseDiscount(s string) Discount {
	digits := DigitsOnly(s)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return Discount(n)
}

func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
