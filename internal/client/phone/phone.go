// Package phone normalizes phone numbers typed into the console forms.
package phone

import "strings"

// DefaultCountryCode is used when no country code is configured.
const DefaultCountryCode = "+250"

// Normalize keeps only digits and '+'. A local number (no leading '+') loses
// one leading '0' and gets countryCode prepended. Empty input stays empty.
func Normalize(raw, countryCode string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}

	s := b.String()
	if s == "" || strings.HasPrefix(s, "+") {
		return s
	}

	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return countryCode + strings.TrimPrefix(s, "0")
}
