package field

import (
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servicetools/go-gsxws/pkg/locale"
)

// Date is a calendar date without a time-of-day component. GSX
// renders it in the active locale's short date format.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the Date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// Clock is a time of day without a date component.
type Clock struct {
	Hour, Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// TimestampLayout is the fixed layout GSX uses for *TimeStamp fields,
// e.g. "18-Jan-13 14:38:04".
const TimestampLayout = "02-Jan-06 15:04:05"

// ISODateLayout is the alternate date layout some responses use in
// place of the locale short format.
const ISODateLayout = "2006-01-02"

// attachmentFields are the response elements whose text is a base64
// encoded file. Decode materializes them to temporary files.
var attachmentFields = map[string]bool{
	"packingList":         true,
	"proformaFileData":    true,
	"returnLabelFileData": true,
}

// datetimeFields are the response elements carrying a zoned datetime
// of the form "2011-01-27 11:45:01 PST". The zone abbreviation is
// unusable for parsing and is dropped.
var datetimeFields = map[string]bool{
	"dispatchSentDate": true,
}

// numericFields are monetary response elements whose tag name does not
// carry the Price suffix.
var numericFields = map[string]bool{
	"totalFromOrder": true,
}

var (
	priceStrip = regexp.MustCompile(`[A-Z ,]`)
	zonedStamp = regexp.MustCompile(`^(\d+-\d+-\d+ \d+:\d+:\d+) (\w+)$`)
)

// Encode converts a native value into its wire string under the given
// locale formats. Supported types are string, bool, integers,
// decimal.Decimal, Date, Clock, time.Time (encoded as a date) and
// []byte (base64). Any other type is a validation error and is never
// sent over the wire.
func Encode(v any, f locale.Formats) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		if v {
			return "Y", nil
		}
		return "N", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case Date:
		return v.Time().Format(f.Date), nil
	case Clock:
		return time.Date(0, 1, 1, v.Hour, v.Minute, 0, 0, time.UTC).Format(f.Time), nil
	case time.Time:
		return v.Format(f.Date), nil
	case decimal.Decimal:
		return v.String(), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(v), nil
	default:
		return "", fmt.Errorf("field: cannot encode value of type %T", v)
	}
}

// Decode converts a wire string back into a native value, keyed by the
// element's tag name. The mapping mirrors Encode:
//
//   - attachment fields decode base64 to a temporary file, returning
//     its path
//   - names ending in "Price", plus the known monetary fields without
//     that suffix, parse to a decimal after stripping the currency
//     prefix
//   - names ending in "TimeStamp" parse with TimestampLayout
//   - names ending in "Date" parse the locale short format, then the
//     ISO form
//   - exactly "Y" or "N" decodes to a bool
//
// Unrecognized or unparsable values pass through as the original
// string. Decode never fails except for malformed attachment base64,
// which returns a *DecodeError. The empty string always passes through
// untouched.
func Decode(name, s string) (any, error) {
	if s == "" {
		return s, nil
	}

	if attachmentFields[name] {
		path, err := WriteAttachment(name, s)
		if err != nil {
			return nil, &DecodeError{Field: name, Err: err}
		}
		return path, nil
	}

	if datetimeFields[name] {
		if m := zonedStamp.FindStringSubmatch(s); m != nil {
			if ts, err := time.Parse("2006-1-2 15:4:5", m[1]); err == nil {
				return ts, nil
			}
		}
		return s, nil
	}

	if strings.HasSuffix(name, "Price") || numericFields[name] {
		d, err := decimal.NewFromString(priceStrip.ReplaceAllString(s, ""))
		if err == nil {
			return d, nil
		}
		return s, nil
	}

	if strings.HasSuffix(name, "TimeStamp") {
		if ts, err := time.Parse(TimestampLayout, s); err == nil {
			return ts, nil
		}
		return s, nil
	}

	if strings.HasSuffix(name, "Date") {
		if t, err := time.Parse("01/02/06", s); err == nil {
			return DateOf(t), nil
		}
		if t, err := time.Parse(ISODateLayout, s); err == nil {
			return DateOf(t), nil
		}
		return s, nil
	}

	switch s {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	}

	return s, nil
}

// WriteAttachment decodes base64 content into a uniquely named
// temporary file and returns its path. The file is not deleted;
// cleanup belongs to the caller.
func WriteAttachment(name, b64 string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}

	f, err := os.CreateTemp("", fmt.Sprintf("%s-%s-*.pdf", name, uuid.NewString()))
	if err != nil {
		return "", fmt.Errorf("creating attachment file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("writing attachment file: %w", err)
	}
	return f.Name(), nil
}

// DecodeError reports a response attachment that could not be
// base64-decoded. It is fatal for the response it occurs in.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
