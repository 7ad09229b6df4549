package payment

import "strings"

func FormatCardNumber(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range []rune(s) {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func FormatCardExpiry(s string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)

	if len(digits) < 2 {
		return digits
	}
	end := len(digits)
	if end > 4 {
		end = 4
	}
	return digits[:2] + "/" + digits[2:end]
}
