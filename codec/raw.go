package codec

import "bytes"

// Bytes passes []byte values through untouched on write. Decode returns a
// copy, since the payload may alias a buffer owned by the provider.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return bytes.Clone(b), nil }

// String stores a Go string as its raw bytes in the binary frame.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
