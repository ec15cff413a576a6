package codec

import (
	"errors"
	"fmt"
)

// ErrTooLarge reports a payload over a Limit bound.
var ErrTooLarge = errors.New("codec: payload too large")

// Limit bounds payload sizes around another codec. Oversized writes fail to
// encode, so the entry is never written; oversized reads fail to decode, so
// the entry is dropped as undecodable. A bound <= 0 is not enforced.
type Limit[V any] struct {
	Inner     Codec[V]
	MaxEncode int
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) {
	b, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	if c.MaxEncode > 0 && len(b) > c.MaxEncode {
		return nil, fmt.Errorf("%w: encoded %d > %d", ErrTooLarge, len(b), c.MaxEncode)
	}
	return b, nil
}

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("%w: stored %d > %d", ErrTooLarge, len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}

// Textual reports the framing of Inner.
func (c Limit[V]) Textual() bool { return IsTextual(c.Inner) }
