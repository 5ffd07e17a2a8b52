package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ExactStorage_InsertReportsNewness(t *testing.T) {
	s := make(exactStorage)

	assert.True(t, s.insert(1))
	assert.False(t, s.insert(1))
	assert.True(t, s.insert(2))
	assert.Len(t, s, 2)
}

func Test_ExactStorage_OverCapacity(t *testing.T) {
	s := make(exactStorage)
	for i := uint64(0); i < exactCapacity; i++ {
		s.insert(i)
	}
	assert.False(t, s.overCapacity())

	s.insert(uint64(exactCapacity))
	assert.True(t, s.overCapacity())
}

func Test_ExactStorage_WriteBytes_SortedAscending(t *testing.T) {
	s := exactStorage{3: {}, 1: {}, 2: {}}

	buf := make([]byte, s.sizeInBytes())
	s.writeBytes(buf)

	assert.Equal(t, 24, len(buf))

	var prev uint64
	for i := 0; i < len(buf); i += 8 {
		v := uint64(buf[i]) | uint64(buf[i+1])<<8 | uint64(buf[i+2])<<16 | uint64(buf[i+3])<<24 |
			uint64(buf[i+4])<<32 | uint64(buf[i+5])<<40 | uint64(buf[i+6])<<48 | uint64(buf[i+7])<<56
		if i > 0 {
			assert.Greater(t, v, prev)
		}
		prev = v
	}
}

func Test_ExactStorage_Copy_IsIndependent(t *testing.T) {
	s := exactStorage{1: {}, 2: {}}
	c := s.copy().(exactStorage)

	c.insert(3)

	assert.Len(t, s, 2)
	assert.Len(t, c, 3)
}
