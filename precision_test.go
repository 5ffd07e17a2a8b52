package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewPrecision_RejectsOutOfRange(t *testing.T) {
	_, err := newPrecision(3)
	assert.ErrorIs(t, err, ErrInvalidPrecision)

	_, err = newPrecision(17)
	assert.ErrorIs(t, err, ErrInvalidPrecision)
}

func Test_NewPrecision_DerivesConstants(t *testing.T) {
	p, err := newPrecision(10)
	require.NoError(t, err)

	assert.Equal(t, 10, p.b)
	assert.Equal(t, 1024, p.m)
	assert.Equal(t, 54, p.k)
}

func Test_AlphaM_SpecialCases(t *testing.T) {
	assert.Equal(t, 0.673, alphaM(16))
	assert.Equal(t, 0.697, alphaM(32))
	assert.Equal(t, 0.709, alphaM(64))
}

func Test_AlphaM_GeneralFormula(t *testing.T) {
	m := 1024
	expected := 0.7213 / (1.0 + 1.079/float64(m))
	assert.InDelta(t, expected, alphaM(m), 1e-12)
}

func Test_SparseCapacity_NeverNegative(t *testing.T) {
	assert.Equal(t, 0, sparseCapacity(16)) // b=4: 16/15-10 < 0
	assert.Equal(t, 0, sparseCapacity(32)) // b=5
	assert.Equal(t, 0, sparseCapacity(64)) // b=6: 64/15-10 = 4-10 < 0

	assert.Equal(t, 1082, sparseCapacity(16384)) // b=14
}

func Test_Round_ClampsNegativeToZero(t *testing.T) {
	assert.Equal(t, uint64(0), round(-5.0))
	assert.Equal(t, uint64(0), round(-0.4))
	assert.Equal(t, uint64(4), round(3.6))
	assert.Equal(t, uint64(4), round(4.4))
}
