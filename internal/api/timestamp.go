package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a backend datetime. Unparseable values decode to the zero
// time with Raw preserved, so one bad field never fails a whole page.
type Timestamp struct {
	time.Time
	Raw string
}

func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	ts := Timestamp{Raw: s}
	if s == "" {
		return ts
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return ts
		}
	}
	return ts
}

// Valid reports whether the backend sent a datetime that could be parsed.
func (t Timestamp) Valid() bool { return !t.IsZero() }

// Format renders the timestamp, "n/a" when absent and "Invalid Date"
// when the backend value could not be parsed.
func (t Timestamp) Format(layout string) string {
	switch {
	case t.Raw == "" && t.IsZero():
		return "n/a"
	case t.IsZero():
		return "Invalid Date"
	default:
		return t.Time.Format(layout)
	}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseTimestamp(s)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		if t.Raw == "" {
			return []byte("null"), nil
		}
		return json.Marshal(t.Raw)
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
