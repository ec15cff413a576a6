package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Textual is implemented by codecs whose output is always a JSON document.
// Entries of textual codecs are persisted as {"data": ..., "timestamp": ...};
// everything else is stored in a binary frame.
type Textual interface {
	Textual() bool
}

// IsTextual reports whether c declares JSON output.
func IsTextual(c any) bool {
	t, ok := c.(Textual)
	return ok && t.Textual()
}
