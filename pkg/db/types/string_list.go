package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList stores an ordered list of strings as a JSON text column.
//
// Historical rows were written by clients that sometimes double-encoded the
// value (a JSON string containing a JSON array). Scan normalizes both forms so
// the rest of the codebase only ever sees a plain slice.
type StringList []string

// Value serializes the list as a canonical JSON array. A nil list is stored
// as an empty array, never NULL.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("encoding string list: %w", err)
	}
	return string(raw), nil
}

// Scan decodes the stored text into a slice, accepting the canonical array
// form and the legacy double-encoded form.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported string list source type %T", src)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*l = StringList{}
		return nil
	}

	if strings.HasPrefix(raw, "\"") {
		// Legacy double-encoded form: unwrap the outer JSON string first.
		var inner string
		if err := json.Unmarshal([]byte(raw), &inner); err != nil {
			return fmt.Errorf("decoding wrapped string list: %w", err)
		}
		raw = strings.TrimSpace(inner)
		if raw == "" {
			*l = StringList{}
			return nil
		}
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return fmt.Errorf("decoding string list: %w", err)
	}
	if values == nil {
		values = []string{}
	}
	*l = StringList(values)
	return nil
}
