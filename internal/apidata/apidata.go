// Package apidata decodes records exported by the legacy backend. Depending
// on the endpoint and version, a record arrives either flat or nested under a
// named key ({"sales_receipt": {...}} vs {...}), and collections arrive
// either as a bare array or wrapped the same way. Callers decode through this
// package and get told which shape they were handed.
package apidata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Shape reports how a decoded payload was laid out on the wire.
type Shape int

const (
	// ShapeFlat means the record or list was the top-level JSON value.
	ShapeFlat Shape = iota
	// ShapeWrapped means the record or list was nested under a named key.
	ShapeWrapped
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeWrapped:
		return "wrapped"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Unmarshal decodes a single record into v. If the payload is an object
// containing key, the value under key is decoded; otherwise the whole payload
// is decoded as the record itself.
func Unmarshal(data []byte, key string, v any) (Shape, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err == nil {
		if inner, ok := envelope[key]; ok {
			if err := json.Unmarshal(inner, v); err != nil {
				return ShapeWrapped, fmt.Errorf("decoding %q record: %w", key, err)
			}
			return ShapeWrapped, nil
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return ShapeFlat, fmt.Errorf("decoding record: %w", err)
	}
	return ShapeFlat, nil
}

// UnmarshalList decodes a collection into v (a pointer to a slice). A
// top-level array decodes directly; an object is expected to carry the array
// under key.
func UnmarshalList(data []byte, key string, v any) (Shape, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, v); err != nil {
			return ShapeFlat, fmt.Errorf("decoding list: %w", err)
		}
		return ShapeFlat, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ShapeWrapped, fmt.Errorf("decoding list envelope: %w", err)
	}
	inner, ok := envelope[key]
	if !ok {
		return ShapeWrapped, fmt.Errorf("payload has no %q key", key)
	}
	if err := json.Unmarshal(inner, v); err != nil {
		return ShapeWrapped, fmt.Errorf("decoding %q list: %w", key, err)
	}
	return ShapeWrapped, nil
}
