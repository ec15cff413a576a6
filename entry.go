package expcache

import "time"

// Entry is a decoded cache entry as persisted: the payload plus its write
// time in unix milliseconds.
type Entry[V any] struct {
	Data      V
	Timestamp int64
}

// WrittenAt returns the write time of the entry.
func (e Entry[V]) WrittenAt() time.Time { return time.UnixMilli(e.Timestamp) }

// Age returns how long ago the entry was written, relative to now.
func (e Entry[V]) Age(now time.Time) time.Duration {
	return time.Duration(now.UnixMilli()-e.Timestamp) * time.Millisecond
}
