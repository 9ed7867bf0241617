// Package value converts decoded container values into the text form the
// runtime expects for variables.
//
// Integers print their exact digits. Other numbers print as the shortest
// round-tripping double ("10.0", "1e-07", "1e+16", "inf"). Booleans are
// "True" or "False" and null is "None", which is what the Scrape runtime
// reads back.
package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// ErrNotScalar is returned for values that have no text form.
var ErrNotScalar = errors.New("value is not a scalar")

// ToCty maps a scalar decoded from project JSON onto a cty value. Numbers
// keep their full decimal precision.
func ToCty(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.String), nil
	case string:
		return cty.StringVal(t), nil
	case bool:
		return cty.BoolVal(t), nil
	case json.Number:
		n, err := cty.ParseNumberVal(string(t))
		if err != nil {
			return cty.NilVal, fmt.Errorf("parse number %q: %w", t, err)
		}
		return n, nil
	case float64:
		return cty.NumberFloatVal(t), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case int64:
		return cty.NumberIntVal(t), nil
	default:
		return cty.NilVal, fmt.Errorf("%w: %T", ErrNotScalar, v)
	}
}

// Text returns the text form of a scalar. Strings pass through unchanged.
func Text(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case nil:
		return "None", nil
	case bool:
		if t {
			return "True", nil
		}
		return "False", nil
	case json.Number:
		if isInteger(string(t)) {
			return integerText(t)
		}
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return "", fmt.Errorf("parse number %q: %w", t, err)
		}
		return floatText(f), nil
	case float64:
		return floatText(t), nil
	case int, int64:
		return integerText(t)
	default:
		return "", fmt.Errorf("%w: %T", ErrNotScalar, v)
	}
}

// isInteger reports whether a JSON number literal has neither a fraction
// nor an exponent.
func isInteger(s string) bool {
	return !strings.ContainsAny(s, ".eE")
}

func integerText(v any) (string, error) {
	val, err := ToCty(v)
	if err != nil {
		return "", err
	}
	i, _ := val.AsBigFloat().Int(nil)
	return i.String(), nil
}

// floatText formats f as its shortest round-tripping decimal, switching to
// exponent notation below 1e-4 and from 1e16 up.
func floatText(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sign := ""
	if math.Signbit(f) {
		sign = "-"
		f = -f
	}
	if f == 0 {
		return sign + "0.0"
	}

	// d.ddde±XX
	e := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(e, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	n, _ := strconv.Atoi(exp)
	point := n + 1

	if point <= -4 || point > 16 {
		frac := ""
		if len(digits) > 1 {
			frac = "." + digits[1:]
		}
		expSign := "+"
		if n < 0 {
			expSign = "-"
			n = -n
		}
		return fmt.Sprintf("%s%s%se%s%02d", sign, digits[:1], frac, expSign, n)
	}

	switch {
	case point <= 0:
		return sign + "0." + strings.Repeat("0", -point) + digits
	case point >= len(digits):
		return sign + digits + strings.Repeat("0", point-len(digits)) + ".0"
	default:
		return sign + digits[:point] + "." + digits[point:]
	}
}
