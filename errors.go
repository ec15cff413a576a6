package expcache

import (
	"fmt"

	"github.com/unkn0wn-root/expcache/internal/wire"
)

// ErrCorrupt is returned by Peek when stored bytes are not a valid entry.
var ErrCorrupt = wire.ErrCorrupt

// OpError describes a failed store or codec step of a cache operation.
type OpError struct {
	Op  string // "get", "set", "del", "encode", "decode"
	Key string // storage key
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("expcache: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
