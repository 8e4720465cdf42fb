// Package dateutil provides date format parsing for the report footer.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength limits format string length to prevent abuse.
const MaxFormatLength = 50

// DefaultFormat is used when "auto" is specified without a format.
const DefaultFormat = "YYYY-MM-DD"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets provides named shortcuts for common date formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Resolve turns a date spec into a display string:
//   - ""            -> "" (no footer line)
//   - "auto"        -> now formatted with DefaultFormat
//   - "auto:FORMAT" -> now formatted with FORMAT (token or preset)
//   - anything else -> returned verbatim
func Resolve(spec string, now time.Time) (string, error) {
	switch {
	case spec == "":
		return "", nil
	case spec == "auto":
		return Format(now, DefaultFormat)
	case strings.HasPrefix(spec, "auto:"):
		return Format(now, strings.TrimPrefix(spec, "auto:"))
	default:
		return spec, nil
	}
}

// Format renders t using a token format ("YYYY-MM-DD") or a preset name
// ("iso", "european", "us", "long"; case-insensitive).
func Format(t time.Time, format string) (string, error) {
	if format == "" {
		format = DefaultFormat
	}
	if len(format) > MaxFormatLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}

	goFmt, err := translate(format)
	if err != nil {
		return "", err
	}
	return t.Format(goFmt), nil
}

// translate converts a token format to a Go time layout. Text in square
// brackets is copied literally: "[Date]: YYYY" keeps "Date:" as text.
func translate(format string) (string, error) {
	var b strings.Builder
	i := 0
	sawToken := false

	for i < len(format) {
		if format[i] == '[' {
			end := strings.IndexByte(format[i:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket", ErrInvalidDateFormat)
			}
			b.WriteString(format[i+1 : i+end])
			i += end + 1
			continue
		}

		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(format[i:], tok.token) {
				b.WriteString(tok.goFmt)
				i += len(tok.token)
				matched = true
				sawToken = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}

	if !sawToken {
		return "", fmt.Errorf("%w: no date tokens in %q", ErrInvalidDateFormat, format)
	}
	return b.String(), nil
}
