// Package locale provides the per-locale wire formats and the static
// region, timezone and environment tables used by the GSX web service.
//
// GSX renders dates and times as locale-dependent strings on the wire.
// The service itself never communicates which format it used; callers
// configure a locale code up front and both sides format accordingly.
package locale

import "fmt"

// Formats holds the Go time layouts used to render date and time
// values for one locale.
type Formats struct {
	Date string
	Time string
}

// DefaultLocale is used when the caller does not configure one.
const DefaultLocale = "en_XXX"

var formats = map[string]Formats{
	"en_XXX": {Date: "01/02/06", Time: "03:04 PM"},
	"en_US":  {Date: "01/02/06", Time: "03:04 PM"},
	"en_GB":  {Date: "02/01/06", Time: "15:04"},
	"fr_FR":  {Date: "02/01/06", Time: "15:04"},
	"de_DE":  {Date: "02.01.06", Time: "15:04"},
	"es_ES":  {Date: "02/01/06", Time: "15:04"},
	"it_IT":  {Date: "02/01/06", Time: "15:04"},
	"nl_NL":  {Date: "02-01-06", Time: "15:04"},
	"fi_FI":  {Date: "02.01.06", Time: "15:04"},
	"sv_SE":  {Date: "06-01-02", Time: "15:04"},
	"ja_JP":  {Date: "06/01/02", Time: "15:04"},
}

// GetFormats returns the date and time layouts for the given locale
// code. Unknown locales are an error rather than a silent fallback:
// submitting a date in the wrong format produces opaque server-side
// validation faults.
func GetFormats(loc string) (Formats, error) {
	f, ok := formats[loc]
	if !ok {
		return Formats{}, fmt.Errorf("unknown locale %q", loc)
	}
	return f, nil
}

// Environment identifies one of the GSX deployment environments.
type Environment string

// GSX environments. The environment selects the service host and
// partitions session caching.
const (
	Production  Environment = "pr"
	Testing     Environment = "it"
	Development Environment = "ut"
)

// Valid reports whether e names a known environment.
func (e Environment) Valid() bool {
	switch e {
	case Production, Testing, Development:
		return true
	}
	return false
}

// RegionCodes are the service region identifiers accepted in the
// endpoint URL path.
var RegionCodes = []string{"apac", "am", "la", "emea"}

// Regions maps GSX region codes to their human-readable names.
var Regions = map[string]string{
	"002": "Asia/Pacific",
	"003": "Japan",
	"004": "Europe",
	"005": "United States",
	"006": "Canada",
	"007": "Latin America",
}

// Timezones maps the timezone codes accepted at authentication time to
// their descriptions.
var Timezones = map[string]string{
	"GMT":  "UTC (Greenwich Mean Time)",
	"PDT":  "UTC - 7h (Pacific Daylight Time)",
	"PST":  "UTC - 8h (Pacific Standard Time)",
	"CDT":  "UTC - 5h (Central Daylight Time)",
	"CST":  "UTC - 6h (Central Standard Time)",
	"EDT":  "UTC - 4h (Eastern Daylight Time)",
	"EST":  "UTC - 5h (Eastern Standard Time)",
	"CEST": "UTC + 2h (Central European Summer Time)",
	"CET":  "UTC + 1h (Central European Time)",
	"JST":  "UTC + 9h (Japan Standard Time)",
	"IST":  "UTC + 5.5h (Indian Standard Time)",
	"CCT":  "UTC + 8h (Chinese Coast Time)",
	"AEST": "UTC + 10h (Australian Eastern Standard Time)",
	"AEDT": "UTC + 11h (Australian Eastern Daylight Time)",
	"ACST": "UTC + 9.5h (Australian Central Standard Time)",
	"ACDT": "UTC + 10.5h (Australian Central Daylight Time)",
	"NZST": "UTC + 12h (New Zealand Standard Time)",
}
