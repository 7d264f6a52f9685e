// Package hash provides the xxHash64 primitive used to intern repeated
// block descriptors during chunk palette decoding.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
//
// The chunk package uses this to build a lookup key for a block
// descriptor's (name, sorted-properties) tuple, so identical descriptors
// decoded across many sections of the same chunk share one BlockState
// allocation instead of being re-parsed and re-allocated per section.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
