// Package hash provides the default hash delegate used by hll.Sketch when
// no HashFunc is supplied at construction. The byte-level hash function is
// explicitly an external collaborator of the sketch (spec.md section 1);
// this package is that collaborator's default implementation, not part of
// the sketch's core.
package hash

import "github.com/cespare/xxhash/v2"

// Default hashes data with xxHash64. It is deterministic and
// well-distributed but not cryptographically secure, matching the
// requirements in spec.md section 6.2. xxHash64 already produces a native
// 64-bit digest, so no truncation is needed.
func Default(data []byte) uint64 {
	return xxhash.Sum64(data)
}
