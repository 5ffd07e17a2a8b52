package hll

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	wireMajorVersion = 1
	wireMinorVersion = 0

	flagExactActive  = 0x01
	flagSparseActive = 0x02

	// headerSize is u16 major + u16 minor + i32 b + u8 flags.
	headerSize = 2 + 2 + 4 + 1
)

// ErrIncompatibleFormat is returned by FromBytes when the data's major
// version is not one this library understands.
var ErrIncompatibleFormat = errors.New("incompatible hll wire format version")

// ErrInsufficientBytes is returned by FromBytes when the provided slice is
// truncated relative to what its header declares.
var ErrInsufficientBytes = errors.New("insufficient bytes to deserialize sketch")

// ToBytes serializes the sketch using the versioned binary format described
// in spec.md section 6.1. count_additions is not part of the v1.0 format;
// see DESIGN.md's open-question log.
func (s *Sketch) ToBytes() []byte {
	var flags byte
	var payloadSize int
	var n int

	switch {
	case s.exact != nil:
		flags = flagExactActive
		n = len(s.exact)
		payloadSize = 4 + s.exact.sizeInBytes()
	case isSparse(s.store):
		flags = flagSparseActive
		sparse := s.store.(sparseStorage)
		n = len(sparse)
		payloadSize = 4 + sparse.sizeInBytes()
	default:
		payloadSize = 4
		if s.store != nil {
			payloadSize += s.store.sizeInBytes()
		}
	}

	out := make([]byte, headerSize+payloadSize)

	binary.LittleEndian.PutUint16(out[0:2], wireMajorVersion)
	binary.LittleEndian.PutUint16(out[2:4], wireMinorVersion)
	binary.LittleEndian.PutUint32(out[4:8], uint32(s.p.b))
	out[8] = flags

	body := out[headerSize:]

	switch {
	case s.exact != nil:
		binary.LittleEndian.PutUint32(body[0:4], uint32(n))
		s.exact.writeBytes(body[4:])
	case isSparse(s.store):
		sparse := s.store.(sparseStorage)
		binary.LittleEndian.PutUint32(body[0:4], uint32(n))
		sparse.writeBytes(body[4:])
	default:
		m := s.p.m
		binary.LittleEndian.PutUint32(body[0:4], uint32(m))
		if s.store != nil {
			s.store.writeBytes(body[4:])
		}
	}

	return out
}

func isSparse(store registerStorage) bool {
	if store == nil {
		return false
	}
	_, ok := store.(sparseStorage)
	return ok
}

// FromBytes deserializes a Sketch previously produced by ToBytes. The
// reconstructed sketch is semantically equivalent to the source: same
// precision, same active representation and contents. If the source held
// an exact set, the sparse/dense shadow is rebuilt by replaying each hash
// through the register codec, per spec.md section 4.2. count_additions is
// not recoverable from the wire format and is left at 0.
//
// FromBytes accepts any minor version within the supported major version
// and returns ErrIncompatibleFormat for any other major version.
func FromBytes(data []byte, hash HashFunc) (*Sketch, error) {
	if len(data) < headerSize {
		return nil, ErrInsufficientBytes
	}

	major := binary.LittleEndian.Uint16(data[0:2])
	if major != wireMajorVersion {
		return nil, errors.Wrapf(ErrIncompatibleFormat, "got major version %d", major)
	}

	b := int(int32(binary.LittleEndian.Uint32(data[4:8])))
	flags := data[8]

	p, err := newPrecision(b)
	if err != nil {
		return nil, err
	}

	if hash == nil {
		hash = defaultHash
	}

	s := &Sketch{p: p, hash: hash}

	body := data[headerSize:]
	if len(body) < 4 {
		return nil, ErrInsufficientBytes
	}
	n := int(int32(binary.LittleEndian.Uint32(body[0:4])))
	rest := body[4:]

	switch {
	case flags&flagExactActive != 0:
		if len(rest) < 8*n {
			return nil, ErrInsufficientBytes
		}
		s.exact = make(exactStorage, n)
		for i := 0; i < n; i++ {
			h := binary.LittleEndian.Uint64(rest[i*8 : i*8+8])
			s.exact[h] = struct{}{}
		}
		rebuildShadow(s)

	case flags&flagSparseActive != 0:
		if len(rest) < 3*n {
			return nil, ErrInsufficientBytes
		}
		sparse := make(sparseStorage, n)
		for i := 0; i < n; i++ {
			entry := rest[i*3 : i*3+3]
			index := binary.LittleEndian.Uint16(entry[0:2])
			sparse[index] = entry[2]
		}
		s.store = sparse

	default:
		m := n
		if len(rest) < m {
			return nil, ErrInsufficientBytes
		}
		dense := make(denseStorage, m)
		copy(dense, rest[:m])
		s.store = dense
	}

	return s, nil
}

// rebuildShadow replays every hash in s.exact through the register codec so
// that the sparse/dense shadow reflects the exact tier's contents, even
// though the shadow itself is never persisted.
func rebuildShadow(s *Sketch) {
	s.store = make(sparseStorage)
	for h := range s.exact {
		index, rank := splitHash(h, s.p)
		s.store.setIfGreater(s.p, index, rank)
		if s.store.overCapacity(s.p) {
			s.upgrade()
		}
	}
}
