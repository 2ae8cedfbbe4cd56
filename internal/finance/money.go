package finance

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]+`)

var hundred = decimal.NewFromInt(100)

// ParseAmount normalizes a monetary value coming from a record or a request body.
// Strings are stripped of everything except digits, '.' and '-' before parsing,
// so "₦5,000.00" and "5000" both yield 5000. Anything that cannot be parsed is zero.
func ParseAmount(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(val)
	case float32:
		return ParseAmount(float64(val))
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case uint:
		return decimal.NewFromInt(int64(val))
	case json.Number:
		return ParseAmount(val.String())
	case string:
		return parseAmountString(val)
	case *string:
		if val == nil {
			return decimal.Zero
		}
		return parseAmountString(*val)
	default:
		return decimal.Zero
	}
}

func parseAmountString(s string) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(cleaned); err == nil {
		return d
	}
	// Mirror a lenient float parse: keep the longest numeric prefix ("12.5.3" -> 12.5).
	for end := len(cleaned) - 1; end > 0; end-- {
		if d, err := decimal.NewFromString(cleaned[:end]); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// FormatAmount renders an amount with comma thousands separators and exactly two
// fractional digits, e.g. 100000 -> "100,000.00".
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	if sign != "" && strings.Trim(intPart+frac, "0") == "" {
		sign = ""
	}
	return sign + b.String() + "." + frac
}

// RoundCents rounds half away from zero to two decimal places.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
