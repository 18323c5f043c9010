//go:build purego

package utils

import (
	"encoding/json" //nolint:depguard
)

func MarshalJSON(val any) ([]byte, error) {
	return json.Marshal(val)
}

func UnmarshalJSON(data []byte, val any) error {
	return json.Unmarshal(data, val)
}
