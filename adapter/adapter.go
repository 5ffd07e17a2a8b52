// Package adapter provides the trivial typed-value-to-bytes shims spec.md
// section 6.3 describes as boundary code: the sketch core ingests only
// bytes, and these functions convert primitive values into a fixed,
// platform-independent byte encoding before handing them to Sketch.Add.
package adapter

import (
	"encoding/binary"
	"math"
)

// String encodes a string as its UTF-8 bytes.
func String(s string) []byte {
	return []byte(s)
}

// Uint64 encodes v as 8 little-endian bytes.
func Uint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

// Int64 encodes v as 8 little-endian bytes of its unsigned bit pattern.
func Int64(v int64) []byte {
	return Uint64(uint64(v))
}

// Uint32 encodes v as 4 little-endian bytes.
func Uint32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

// Int32 encodes v as 4 little-endian bytes of its unsigned bit pattern.
func Int32(v int32) []byte {
	return Uint32(uint32(v))
}

// Float64 encodes v as the little-endian bytes of its IEEE-754 bit
// pattern.
func Float64(v float64) []byte {
	return Uint64(math.Float64bits(v))
}

// Float32 encodes v as the little-endian bytes of its IEEE-754 bit
// pattern.
func Float32(v float32) []byte {
	return Uint32(math.Float32bits(v))
}

// Bytes passes a byte buffer through unchanged.
func Bytes(b []byte) []byte {
	return b
}
