package codec

import "encoding/json"

// JSON is the default codec. Non JSON-native values (e.g. custom date
// formats) must implement json.Marshaler/Unmarshaler to survive a round trip.
type JSON[V any] struct{}

var (
	_ Codec[struct{}] = JSON[struct{}]{}
	_ Textual         = JSON[struct{}]{}
)

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}

func (JSON[V]) Textual() bool { return true }
