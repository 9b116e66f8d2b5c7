package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoPayload is returned when an event carries nothing to decode
var ErrNoPayload = errors.New("event has no payload")

// DecodePayload converts an event payload into T. Events published on the
// in-process bus already hold T; anything else is converted through JSON.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T
	if input == nil {
		return result, ErrNoPayload
	}
	if v, ok := input.(T); ok {
		return v, nil
	}
	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode payload into %T: %w", result, err)
	}
	return result, nil
}

// PayloadFields flattens the payload of evt into a JSON-shaped field map,
// the form the audit log stores
func PayloadFields(evt Event) (map[string]interface{}, error) {
	fields, err := DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s payload: %w", evt.Type, err)
	}
	return fields, nil
}
