package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timeFormats are the formats the backend has been observed to emit.
// RFC 3339 is what the client sends; the bare form is what the server's
// serializer produces for stored rows.
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Timestamp wraps time.Time with tolerant decoding of the server's
// datetime representations.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, format := range timeFormats {
		parsed, err := time.Parse(format, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
