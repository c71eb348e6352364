package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ISOLayout matches JavaScript's Date.toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z"

var ErrInvalidDate = errors.New("invalid date")

// Epoch milliseconds accepted as a date. ISOLayout only renders four-digit
// years, which is stricter than JavaScript's ±8.64e15 ms Date range.
const (
	minISOMillis = -62167219200000 // 0000-01-01T00:00:00.000Z
	maxISOMillis = 253402300799999 // 9999-12-31T23:59:59.999Z
)

func inISORange(t time.Time) bool {
	y := t.UTC().Year()
	return y >= 0 && y <= 9999
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseDateTime accepts the formats clients commonly send and returns the
// instant. Values without a zone are read as UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatDateTime renders t in the canonical stored form.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// DateTime is a request field holding a normalized timestamp. It decodes
// from a date string or from epoch milliseconds.
type DateTime string

func (d *DateTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		t, err := ParseDateTime(s)
		if err != nil {
			return err
		}
		if !inISORange(t) {
			return fmt.Errorf("%w: %q out of range", ErrInvalidDate, s)
		}
		*d = DateTime(FormatDateTime(t))
		return nil
	}

	var ms json.Number
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("%w: expected string or number", ErrInvalidDate)
	}
	n, err := ms.Int64()
	if err != nil || n < minISOMillis || n > maxISOMillis {
		return fmt.Errorf("%w: %s", ErrInvalidDate, ms)
	}
	*d = DateTime(FormatDateTime(time.UnixMilli(n)))
	return nil
}

func (d DateTime) String() string {
	return string(d)
}
