package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	collectionPrefix = "faqcol"
	entryPrefix      = "faqent"
)

// makeCollectionKey generates the marker key for a collection.
func makeCollectionKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", collectionPrefix, name))
}

// makeEntryPrefix generates the key prefix shared by a collection's entries.
func makeEntryPrefix(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", entryPrefix, name))
}

// makeEntryKey generates a key for an FAQ entry by corpus position.
// Format: prefix:collection:position
func makeEntryKey(name string, position int) []byte {
	prefix := makeEntryPrefix(name)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort preserves corpus order
	binary.BigEndian.PutUint64(buf[offset:], uint64(position))
	return buf
}
