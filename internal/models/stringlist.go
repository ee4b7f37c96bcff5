package models

import (
	"encoding/json"
	"strings"
)

// StringList is a list-valued field that tolerates the shapes the API has
// been observed to produce: a JSON array of strings, a JSON string containing
// an encoded array, or a bare string. Normalization happens once here at the
// decode boundary; callers always see a plain slice.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*s = nil
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*s = items
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*s = nil
		return nil
	}

	// Double-encoded list, e.g. "[\"a\",\"b\"]".
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			*s = items
			return nil
		}
	}

	*s = StringList{raw}
	return nil
}
