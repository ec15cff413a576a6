package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

type visit struct {
	ID       string    `json:"id" cbor:"id"`
	DoctorID string    `json:"doctorId" cbor:"doctorId"`
	Due      time.Time `json:"due" cbor:"due"`
}

func sample() []visit {
	return []visit{
		{ID: "p1", DoctorID: "d1", Due: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		{ID: "p2", DoctorID: "d2", Due: time.Date(2024, 3, 2, 14, 0, 0, 0, time.UTC)},
	}
}

func roundTrip[V any](t *testing.T, c Codec[V], v V) V {
	t.Helper()
	b, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return out
}

func TestStructCodecsPreserveRecords(t *testing.T) {
	codecs := map[string]Codec[[]visit]{
		"json":    JSON[[]visit]{},
		"cbor":    MustCBOR[[]visit](CBOROptions{}),
		"cbor-ds": MustCBOR[[]visit](CBOROptions{Deterministic: true}),
		"msgpack": Msgpack[[]visit]{},
	}
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			got := roundTrip(t, c, sample())
			want := sample()
			if len(got) != len(want) {
				t.Fatalf("len = %d", len(got))
			}
			for i := range want {
				if got[i].ID != want[i].ID || got[i].DoctorID != want[i].DoctorID || !got[i].Due.Equal(want[i].Due) {
					t.Fatalf("item %d: got %+v want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

// Dynamic payloads must come back as []any of map[string]any whatever the
// codec, or collection filtering cannot inspect the elements.
func TestDynamicPayloadShapes(t *testing.T) {
	raw := []any{map[string]any{"id": "p1"}, map[string]any{"id": "p2"}}
	codecs := map[string]Codec[any]{
		"json":    JSON[any]{},
		"cbor":    MustCBOR[any](CBOROptions{}),
		"msgpack": Msgpack[any]{},
	}
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			got, ok := roundTrip(t, c, any(raw)).([]any)
			if !ok || len(got) != 2 {
				t.Fatalf("expected []any of len 2, got %T %v", got, got)
			}
			m, ok := got[1].(map[string]any)
			if !ok || m["id"] != "p2" {
				t.Fatalf("expected map[string]any element, got %T %v", got[1], got[1])
			}
		})
	}
}

func TestMsgpackUsesJSONFieldNames(t *testing.T) {
	b, err := Msgpack[visit]{}.Encode(sample()[0])
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Contains(b, []byte("doctorId")) || bytes.Contains(b, []byte("DoctorID")) {
		t.Fatalf("expected json tag names in msgpack output: %q", b)
	}
}

func TestDeterministicCBOR(t *testing.T) {
	c := MustCBOR[map[string]int](CBOROptions{Deterministic: true})
	a, _ := c.Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	for i := 0; i < 10; i++ {
		b, _ := c.Encode(map[string]int{"c": 3, "a": 1, "b": 2})
		if !bytes.Equal(a, b) {
			t.Fatalf("deterministic encoding differs")
		}
	}
}

func TestTextualDetection(t *testing.T) {
	if !IsTextual(JSON[int]{}) {
		t.Fatalf("JSON must be textual")
	}
	if IsTextual(Msgpack[int]{}) || IsTextual(MustCBOR[int](CBOROptions{})) || IsTextual(Bytes{}) || IsTextual(String{}) {
		t.Fatalf("binary codecs must not be textual")
	}
	if IsTextual(NewProtobuf(func() *structpb.Struct { return new(structpb.Struct) })) {
		t.Fatalf("protobuf binary must not be textual")
	}
	if !IsTextual(NewProtoJSON(func() *structpb.Struct { return new(structpb.Struct) })) {
		t.Fatalf("protojson must be textual")
	}
	if !IsTextual(Limit[int]{Inner: JSON[int]{}}) {
		t.Fatalf("Limit must forward textual-ness")
	}
	if IsTextual(Limit[int]{Inner: Msgpack[int]{}}) {
		t.Fatalf("Limit over msgpack must not be textual")
	}
}

func TestLimit(t *testing.T) {
	c := Limit[string]{Inner: String{}, MaxDecode: 4, MaxEncode: 6}
	if _, err := c.Decode([]byte("12345")); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge on decode, got %v", err)
	}
	if v, err := c.Decode([]byte("1234")); err != nil || v != "1234" {
		t.Fatalf("Decode at limit: v=%q err=%v", v, err)
	}
	if _, err := c.Encode("1234567"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge on encode, got %v", err)
	}
	if b, err := c.Encode("123456"); err != nil || string(b) != "123456" {
		t.Fatalf("Encode at limit: b=%q err=%v", b, err)
	}

	unlimited := Limit[string]{Inner: String{}}
	big := strings.Repeat("x", 1<<16)
	if _, err := unlimited.Decode([]byte(big)); err != nil {
		t.Fatalf("zero bounds must disable the limit: %v", err)
	}
	if _, err := unlimited.Encode(big); err != nil {
		t.Fatalf("zero bounds must disable the limit: %v", err)
	}
}

func TestBytesDecodeCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	out, _ := Bytes{}.Decode(src)
	src[0] = 9
	if out[0] != 1 {
		t.Fatalf("Decode must not alias its input")
	}
	if got := roundTrip[string](t, String{}, "home"); got != "home" {
		t.Fatalf("String: %q", got)
	}
}

func TestProtobufCodecs(t *testing.T) {
	in, err := structpb.NewStruct(map[string]any{"planId": "p1", "visits": float64(3)})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	ctor := func() *structpb.Struct { return new(structpb.Struct) }

	out := roundTrip(t, Codec[*structpb.Struct](NewProtobuf(ctor)), in)
	if out.Fields["planId"].GetStringValue() != "p1" || out.Fields["visits"].GetNumberValue() != 3 {
		t.Fatalf("binary: unexpected struct: %v", out)
	}

	pj := NewProtoJSON(ctor)
	b, err := pj.Encode(in)
	if err != nil {
		t.Fatalf("protojson Encode: %v", err)
	}
	if !json.Valid(b) {
		t.Fatalf("protojson output is not JSON: %s", b)
	}
	out = roundTrip(t, Codec[*structpb.Struct](pj), in)
	if out.Fields["planId"].GetStringValue() != "p1" {
		t.Fatalf("protojson: unexpected struct: %v", out)
	}

	if _, err := (Protobuf[*structpb.Struct]{}).Decode(nil); err == nil {
		t.Fatalf("expected error without constructor")
	}
}
