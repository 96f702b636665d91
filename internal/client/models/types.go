package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ID is a server-assigned identifier. The API sends it as a number or a
// string; it is always kept as a string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// ImageList is an ordered list of image references. It decodes from a JSON
// array, a string holding a JSON array, or a comma-separated string.
type ImageList []string

func (l *ImageList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = parseImageString(s)
		return nil
	}

	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("images: %w", err)
	}
	*l = compact(arr)
	return nil
}

// MarshalJSON emits an empty array rather than null.
func (l ImageList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func parseImageString(s string) ImageList {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return compact(arr)
		}
	}
	return compact(strings.Split(s, ","))
}

func compact(in []string) ImageList {
	var out ImageList
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Date is a calendar day rendered as YYYY-MM-DD. Empty means unset and is
// sent as null.
type Date string

const DateLayout = "2006-01-02"

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", DateLayout}

// ParseDate normalizes s to YYYY-MM-DD. An empty string clears the date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date(t.Format(DateLayout)), nil
		}
	}
	return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// UnmarshalJSON hydrates unparsable values as empty.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil || s == nil {
		*d = ""
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		*d = ""
		return nil
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}
