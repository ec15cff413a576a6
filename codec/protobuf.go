package codec

import (
	"errors"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

var errNoCtor = errors.New("codec: protobuf codec needs a message constructor")

// Protobuf stores messages in the protobuf binary encoding. ctor returns an
// empty message to decode into, e.g. func() *pb.Plan { return new(pb.Plan) }.
type Protobuf[T proto.Message] struct {
	ctor func() T
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{ctor: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	if c.ctor == nil {
		var zero T
		return zero, errNoCtor
	}
	m := c.ctor()
	if err := proto.Unmarshal(b, m); err != nil {
		var zero T
		return zero, err
	}
	return m, nil
}

// ProtoJSON stores messages as protojson, which lands them in the readable
// {"data":...,"timestamp":...} envelope next to plain JSON entries.
type ProtoJSON[T proto.Message] struct {
	ctor func() T
}

func NewProtoJSON[T proto.Message](ctor func() T) ProtoJSON[T] {
	return ProtoJSON[T]{ctor: ctor}
}

func (ProtoJSON[T]) Textual() bool { return true }

func (c ProtoJSON[T]) Encode(v T) ([]byte, error) {
	return protojson.Marshal(v)
}

func (c ProtoJSON[T]) Decode(b []byte) (T, error) {
	if c.ctor == nil {
		var zero T
		return zero, errNoCtor
	}
	m := c.ctor()
	if err := (protojson.UnmarshalOptions{DiscardUnknown: true}).Unmarshal(b, m); err != nil {
		var zero T
		return zero, err
	}
	return m, nil
}
