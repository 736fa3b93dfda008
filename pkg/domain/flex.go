package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt is an integer that also decodes from a JSON string ("15000") or null.
// The village API serialises numeric columns inconsistently.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("domain.FlexInt: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		// Decimal strings such as "15000.00" come from DECIMAL columns.
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = FlexInt(f)
			return nil
		}
		return fmt.Errorf("domain.FlexInt: invalid number %q", s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("domain.FlexInt: %w", err)
	}
	*n = FlexInt(f)
	return nil
}

// FlexFloat is an optional float that decodes from a JSON number, string, or null.
// A nil *FlexFloat means the field was absent or null.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("domain.FlexFloat: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("domain.FlexFloat: invalid number %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("domain.FlexFloat: %w", err)
	}
	*f = FlexFloat(v)
	return nil
}
