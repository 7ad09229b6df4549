package currency

import (
	"fmt"
	"math"
)

const rupeeSymbol = "₹"

// FormatINR renders amount as a zero-decimal rupee string using the Indian
// digit grouping (lakh/crore): 1234567.4 -> "₹12,34,567".
func FormatINR(amount float64) string {
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	formatted := addIndianSeparators(intStr, ",")

	result := rupeeSymbol + formatted
	if negative {
		result = "-" + result
	}

	return result
}

func FormatDiscount(amount float64) string {
	return "-" + FormatINR(amount)
}

// addIndianSeparators groups the last three digits, then every two digits
// after that.
func addIndianSeparators(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	head := s[:n-3]
	tail := s[n-3:]

	numSeps := (len(head) - 1) / 2
	result := make([]byte, 0, n+numSeps+1)

	lead := len(head) % 2
	if lead == 0 {
		lead = 2
	}
	result = append(result, head[:lead]...)
	for i := lead; i < len(head); i += 2 {
		result = append(result, sep[0])
		result = append(result, head[i:i+2]...)
	}

	result = append(result, sep[0])
	result = append(result, tail...)

	return string(result)
}
