package hll

import (
	"encoding/binary"
	"sort"
)

// sparseStorage maps non-zero register indices to their rank. Only
// registers that have actually been observed occupy an entry; everything
// else is implicitly rank 0.
type sparseStorage map[uint16]uint8

func (s sparseStorage) setIfGreater(p *precision, index uint16, rank uint8) bool {
	if existing := s[index]; rank > existing {
		s[index] = rank
		return true
	}
	return false
}

func (s sparseStorage) register(index uint16) uint8 {
	return s[index]
}

func (s sparseStorage) overCapacity(p *precision) bool {
	return len(s) > p.sparseCapacity
}

// sizeInBytes returns the payload size of the { u16 index; u8 rank } array
// described in spec.md section 6.1, excluding the leading entry count.
func (s sparseStorage) sizeInBytes() int {
	return 3 * len(s)
}

func (s sparseStorage) writeBytes(bytes []byte) {
	indices := make([]uint16, 0, len(s))
	for idx := range s {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	pos := 0
	for _, idx := range indices {
		binary.LittleEndian.PutUint16(bytes[pos:pos+2], idx)
		bytes[pos+2] = s[idx]
		pos += 3
	}
}

func (s sparseStorage) copy() storage {
	o := make(sparseStorage, len(s))
	for k, v := range s {
		o[k] = v
	}
	return o
}

// indicator computes Z^-1 and V across all m registers, treating every
// index absent from the map as rank 0 (contributing 2^0 = 1 to Z^-1 and
// counting toward V).
func (s sparseStorage) indicator(p *precision) (float64, int) {
	sum := 0.0
	for _, rank := range s {
		sum += 1.0 / float64(uint64(1)<<rank)
	}

	zeros := p.m - len(s)
	sum += float64(zeros)

	return sum, zeros
}
