package session

import "strings"

// PhoneIdentifier builds a diner identifier from a country code and a local
// phone number, e.g. ("+54", "1155550000") → "+541155550000". Emails and
// nicknames are used as-is.
func PhoneIdentifier(countryCode, number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	return countryCode + number
}
