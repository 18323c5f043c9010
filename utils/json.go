//go:build !purego

package utils

import (
	gojson "github.com/goccy/go-json"
)

var encodeOptions = []gojson.EncodeOptionFunc{gojson.DisableHTMLEscape(), gojson.DisableNormalizeUTF8()}

func MarshalJSON(val any) ([]byte, error) {
	return gojson.MarshalWithOption(val, encodeOptions...)
}

func UnmarshalJSON(data []byte, val any) error {
	return gojson.UnmarshalWithOption(data, val)
}
