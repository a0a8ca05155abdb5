package playerv1

import (
	"encoding/json"
)

// CodecName is the codec name used on the wire (application/json,
// application/connect+json).
const CodecName = "json"

// Codec encodes the plain structs of this package as JSON.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
