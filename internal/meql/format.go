package meql

import (
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"

	"github.com/roach88/dataspec/internal/queryir"
)

// DateLayout is the display form of date values (DD/MM/yyyy).
const DateLayout = "02/01/2006"

const null = "null"

// FormatValue renders the right-hand side of an expression.
//
//   - numbers are unquoted decimals
//   - dates and date-like strings are quoted DD/MM/yyyy
//   - option arrays are the quoted, comma-joined option names
//   - null and empty arrays are the bare word null
//   - anything else is its quoted string form
//
// Values are quoted verbatim; embedded quotes are not escaped.
func FormatValue(v queryir.Value) string {
	switch val := v.(type) {
	case nil, queryir.Null:
		return null
	case queryir.Number:
		return val.String()
	case queryir.Time:
		return quote(val.Format(DateLayout))
	case queryir.String:
		if d, ok := parseDate(string(val)); ok {
			return quote(d.Format(DateLayout))
		}
		return quote(string(val))
	case queryir.Bool:
		if val {
			return quote("true")
		}
		return quote("false")
	case queryir.Options:
		if len(val) == 0 {
			return null
		}
		names := make([]string, len(val))
		for i, opt := range val {
			names[i] = opt.Name
		}
		return quote(strings.Join(names, ", "))
	case queryir.List:
		if len(val) == 0 {
			return null
		}
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = plain(item)
		}
		return quote(strings.Join(parts, ", "))
	default:
		return null
	}
}

// plain is the unquoted string form of a list element.
func plain(v queryir.Value) string {
	switch val := v.(type) {
	case nil, queryir.Null:
		return null
	case queryir.Number:
		return val.String()
	case queryir.String:
		return string(val)
	case queryir.Bool:
		if val {
			return "true"
		}
		return "false"
	case queryir.Time:
		return val.Format(DateLayout)
	case queryir.Options:
		names := make([]string, len(val))
		for i, opt := range val {
			names[i] = opt.Name
		}
		return strings.Join(names, ", ")
	case queryir.List:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = plain(item)
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func quote(s string) string {
	return `"` + s + `"`
}

// parseDate reports whether s reads as a calendar date. Only strings that
// start with a digit, are at least eight characters long and contain a date
// separator are offered to the parser, so that codes like "E11" or plain
// numbers in text fields stay text.
//
// RFC 3339 timestamps keep their own offset, so a stored Time renders on
// the same day it was entered. Ambiguous numeric dates are read day first,
// matching DateLayout.
func parseDate(s string) (time.Time, bool) {
	if len(s) < 8 || !unicode.IsDigit(rune(s[0])) {
		return time.Time{}, false
	}
	if !strings.ContainsAny(s, "-/.") {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
