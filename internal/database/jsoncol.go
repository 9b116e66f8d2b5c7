package database

import (
	"encoding/json"
	"fmt"
)

// MarshalOptional encodes m for a nullable JSON column, keeping SQL NULL for a nil map
func MarshalOptional(m map[string]interface{}) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalJSON, err)
	}
	return data, nil
}

// UnmarshalOptional decodes a nullable JSON column into dst, leaving dst alone for NULL
func UnmarshalOptional(data []byte, dst *map[string]interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToParseJSON, err)
	}
	return nil
}
