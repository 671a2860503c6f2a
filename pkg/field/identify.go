package field

import "regexp"

// namePattern pairs a field name with the shape of its values. Order
// matters: the first match wins, so the more specific shapes come
// first.
type namePattern struct {
	name string
	re   *regexp.Regexp
}

var namePatterns = []namePattern{
	{"diagnosticEventNumber", regexp.MustCompile(`^\d{23}$`)},
	{"alternateDeviceId", regexp.MustCompile(`^\d{15}$`)},
	{"repairNumber", regexp.MustCompile(`^\d{12}$`)},
	{"dispatchId", regexp.MustCompile(`^G\d{9}$`)},
	{"returnOrder", regexp.MustCompile(`^7\d{9}$`)},
	{"partNumber", regexp.MustCompile(`^([A-Z]{1,2})?\d{3}-?(\d{4}|[A-Z]{2})(/[A-Z])?$`)},
	{"serialNumber", regexp.MustCompile(`^[A-Z0-9]{11,12}$`)},
	{"eeeCode", regexp.MustCompile(`^[A-Z0-9]{3,4}$`)},
	{"productName", regexp.MustCompile(`^i?Mac`)},
}

// Identify guesses which field a bare value belongs to by its shape,
// returning the field name or "" when nothing matches. Serial numbers,
// part numbers and dispatch IDs have distinctive formats, so callers
// can accept positional input.
func Identify(value string) string {
	for _, p := range namePatterns {
		if p.re.MatchString(value) {
			return p.name
		}
	}
	return ""
}

// Validate reports whether value looks like a well-formed instance of
// the named field.
func Validate(value, name string) bool {
	return Identify(value) == name
}
