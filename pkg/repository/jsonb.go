package repository

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores a []string as a JSONB array. NULL scans to an empty list.
type StringList []string

// Value encodes the list as JSON. A nil list is stored as [].
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan decodes a JSONB array.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan StringList: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan StringList: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// Int64List stores a []int64 as a JSONB array. NULL scans to an empty list.
type Int64List []int64

// Value encodes the list as JSON. A nil list is stored as [].
func (l Int64List) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int64(l))
}

// Scan decodes a JSONB array.
func (l *Int64List) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = Int64List{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan Int64List: unsupported type %T", src)
	}

	var out []int64
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan Int64List: %w", err)
	}
	if out == nil {
		out = []int64{}
	}
	*l = out
	return nil
}

// RawJSON stores an arbitrary JSON document in a nullable JSONB column.
// An empty value is stored as NULL and marshals as null.
type RawJSON json.RawMessage

// Value returns the raw document, or nil for an empty value.
func (j RawJSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	if !json.Valid(j) {
		return nil, fmt.Errorf("value RawJSON: invalid JSON")
	}
	return []byte(j), nil
}

// Scan copies the column bytes. NULL scans to an empty value.
func (j *RawJSON) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append(RawJSON(nil), v...)
	case string:
		*j = RawJSON(v)
	default:
		return fmt.Errorf("scan RawJSON: unsupported type %T", src)
	}
	return nil
}

// MarshalJSON emits the stored document verbatim.
func (j RawJSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON stores a copy of data. A JSON null yields an empty value.
func (j *RawJSON) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append(RawJSON(nil), data...)
	return nil
}
