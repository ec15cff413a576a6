package wire

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
)

const (
	version     byte = 1
	kindEntry   byte = 1
	frameHeader      = 4 + 1 + 1 + 8 + 4
)

var (
	ErrCorrupt = errors.New("expcache: corrupt entry")
	magic4     = [...]byte{'E', 'X', 'P', 'C'}
)

// Format selects how an entry is framed in the store.
type Format uint8

const (
	// FormatJSON writes {"data":<payload>,"timestamp":<ms>}. Payload must be valid JSON.
	FormatJSON Format = iota
	// FormatBinary writes a length-prefixed frame and accepts any payload bytes.
	FormatBinary
)

type jsonEnvelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp *int64          `json:"timestamp"`
}

// Encode frames payload with its write timestamp (unix millis).
func Encode(f Format, ts int64, payload []byte) ([]byte, error) {
	if f == FormatBinary {
		return encodeBinary(ts, payload), nil
	}
	if !json.Valid(payload) {
		return nil, errors.New("expcache: json envelope needs a json payload")
	}
	return json.Marshal(jsonEnvelope{Data: payload, Timestamp: &ts})
}

// Decode returns the timestamp and payload of an entry written by Encode.
// The framing is detected from the leading bytes.
func Decode(b []byte) (ts int64, payload []byte, err error) {
	if hasMagic(b) {
		return decodeBinary(b)
	}
	trimmed := bytes.TrimLeft(b, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return 0, nil, ErrCorrupt
	}
	var env jsonEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return 0, nil, ErrCorrupt
	}
	if env.Timestamp == nil || len(env.Data) == 0 {
		return 0, nil, ErrCorrupt
	}
	return *env.Timestamp, env.Data, nil
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Binary: magic(4) | ver(1) | kind(1) | ts(i64 be) | vlen(u32 be) | payload(vlen)
func encodeBinary(ts int64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(frameHeader + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindEntry)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], uint64(ts))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

func decodeBinary(b []byte) (int64, []byte, error) {
	if len(b) < frameHeader || b[4] != version || b[5] != kindEntry {
		return 0, nil, ErrCorrupt
	}
	off := 6

	ts := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	// exact length: trailing bytes are corruption too
	if vlen < 0 || vlen != len(b)-off {
		return 0, nil, ErrCorrupt
	}
	return ts, b[off : off+vlen], nil
}
