package utils

import "strings"

// NormalizePhone strips spaces, dashes and parentheses so a phone number can
// serve as an exact-match key.
func NormalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return replacer.Replace(strings.TrimSpace(phone))
}
