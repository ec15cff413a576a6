package util

import (
	"errors"
	"strings"
)

// Prefix owns the storage keyspace written by expcache.
const Prefix = "exp"

var ErrInvalidKey = errors.New("expcache: namespace and key must be non-empty and free of whitespace")

// StorageKey returns "exp:<ns>:<key>" after validating both parts.
func StorageKey(namespace, key string) (string, error) {
	if !validPart(namespace) || !validPart(key) {
		return "", ErrInvalidKey
	}
	return Prefix + ":" + namespace + ":" + key, nil
}

func validPart(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}) < 0
}
