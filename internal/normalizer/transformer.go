package normalizer

import (
	"regexp"
	"strings"
)

// months maps three-letter month abbreviations to their two-digit number.
var months = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04", "May": "05", "Jun": "06",
	"Jul": "07", "Aug": "08", "Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
}

var nonDecimalPattern = regexp.MustCompile(`[^\d.]`)

// TransformMonth converts a month abbreviation such as "Dec" to "12".
// Unknown abbreviations are returned unchanged.
func TransformMonth(mon string) string {
	if num, ok := months[mon]; ok {
		return num
	}

	return mon
}

// TransformDttm converts "Mon-DD-YY HH:MM:SS" into "20YY-MM-DD HH:MM:SS".
// Values that do not have the date-space-time shape are returned unchanged,
// as is any value whose month abbreviation is not recognized.
func TransformDttm(dttm string) string {
	date, clock, ok := strings.Cut(strings.TrimSpace(dttm), " ")
	if !ok {
		return dttm
	}

	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return dttm
	}

	mon, ok := months[parts[0]]
	if !ok {
		return dttm
	}

	return "20" + parts[2] + "-" + mon + "-" + parts[1] + " " + clock
}

// TransformDollar strips currency symbols and thousands separators,
// e.g. "$3,453.23" becomes "3453.23". Nil and empty values pass through.
func TransformDollar(money *string) *string {
	if money == nil || *money == "" {
		return money
	}

	out := nonDecimalPattern.ReplaceAllString(*money, "")

	return &out
}

// EscapeQuote doubles embedded quotes and wraps the value in quotes so it can
// be embedded in delimited output. Nil maps to the bare NULL marker.
func EscapeQuote(s *string) string {
	if s == nil {
		return nullMarker
	}

	return `"` + strings.ReplaceAll(*s, `"`, `""`) + `"`
}

// UnescapeQuote reverses EscapeQuote. The bool result is false for the NULL
// marker. Values that are not quoted are returned as-is.
func UnescapeQuote(s string) (string, bool) {
	if s == nullMarker {
		return "", false
	}

	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`), true
	}

	return s, true
}

// dollarOrNull applies TransformDollar and renders nil as the NULL marker.
func dollarOrNull(money *string) string {
	out := TransformDollar(money)
	if out == nil {
		return nullMarker
	}

	return *out
}
