package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_String_EncodesUTF8Bytes(t *testing.T) {
	assert.Equal(t, []byte("hello"), String("hello"))
}

func Test_Uint64_EncodesLittleEndian(t *testing.T) {
	buf := Uint64(0x0102030405060708)
	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf)
}

func Test_Int64_MatchesUint64BitPattern(t *testing.T) {
	assert.Equal(t, Uint64(uint64(42)), Int64(42))
	assert.Equal(t, Uint64(uint64(0xFFFFFFFFFFFFFFFF)), Int64(-1))
}

func Test_Uint32_EncodesLittleEndian(t *testing.T) {
	buf := Uint32(0x01020304)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
}

func Test_Int32_MatchesUint32BitPattern(t *testing.T) {
	assert.Equal(t, Uint32(uint32(7)), Int32(7))
	assert.Equal(t, Uint32(uint32(0xFFFFFFFF)), Int32(-1))
}

func Test_Float64_DistinguishesValues(t *testing.T) {
	a := Float64(1.5)
	b := Float64(2.5)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Float64(1.5))
}

func Test_Float32_DistinguishesValues(t *testing.T) {
	a := Float32(1.5)
	b := Float32(2.5)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Float32(1.5))
}

func Test_Bytes_PassesThroughUnchanged(t *testing.T) {
	b := []byte{1, 2, 3}
	assert.Equal(t, b, Bytes(b))
}
