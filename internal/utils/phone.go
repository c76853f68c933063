package utils

import (
	"errors"
	"strings"
)

// ErrBadPhone is returned when a raw phone number does not reduce to
// a plausible Israeli subscriber number.
var ErrBadPhone = errors.New("invalid phone number")

// NormalizePhone converts any raw phone input to canonical +972 E.164
// form. The rule is exact: strip all non-digits; if the cleaned
// string starts with the "972" country prefix, drop it; if what
// remains starts with a leading "0", drop that too; prepend "+972".
//
//	"050-123-4567" -> "0501234567" -> "501234567" -> "+972501234567"
//	"972541112223" -> "541112223"  -> "+972541112223"
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	digits = strings.TrimPrefix(digits, "972")
	if strings.HasPrefix(digits, "0") {
		digits = digits[1:]
	}
	if len(digits) < 7 || len(digits) > 10 {
		return "", ErrBadPhone
	}
	return "+972" + digits, nil
}
