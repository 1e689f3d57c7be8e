// Package serialize encodes checksum reports as JSON or as protobuf wire
// format messages.
package serialize

import (
	"encoding/json"
)

// MarshalJSON encodes data as JSON.
func MarshalJSON(data any) ([]byte, error) {
	return json.Marshal(data)
}

func UnMarshalJSON(data []byte, dest any) error {
	return json.Unmarshal(data, dest)
}
