package utils

import (
	"strconv"
	"strings"
)

// Round rounds f to the given number of decimal places using the correctly
// rounded decimal value of f, with exact ties going to the even digit.
// Round(2.675, 2) is 2.67 because 2.675 is stored as 2.67499999...
func Round(f float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', places, 64), 64)
	if err != nil {
		return f
	}
	return r
}

// FormatThousands renders f with a fixed number of decimals and comma
// thousands separators, e.g. 1234567.891 -> "1,234,567.89"
func FormatThousands(f float64, places int) string {
	s := strconv.FormatFloat(f, 'f', places, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	pre := len(intPart) % 3
	if pre > 0 {
		b.WriteString(intPart[:pre])
	}
	for i := pre; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	return sign + b.String() + frac
}

// FormatCurrency renders an amount as "MYR 1,234.56"
func FormatCurrency(currency string, amount float64) string {
	return currency + " " + FormatThousands(amount, 2)
}

// FormatFixed renders f with exactly places decimals and no separators
func FormatFixed(f float64, places int) string {
	return strconv.FormatFloat(f, 'f', places, 64)
}
