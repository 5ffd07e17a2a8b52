package hll

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// minimumPrecision and maximumPrecision bound the precision parameter b.
	minimumPrecision = 4
	maximumPrecision = 16

	// exactCapacity is the maximum number of distinct hashes the exact tier
	// will hold before it is discarded in favor of the sparse/dense shadow.
	exactCapacity = 100
)

// ErrInvalidPrecision is returned by New when the requested precision falls
// outside [4, 16].
var ErrInvalidPrecision = errors.New("precision must be between 4 and 16")

// precision bundles the immutable, derived constants for a given b. Two
// sketches are only mergeable if they share an identical *precision (or,
// equivalently, the same b).
type precision struct {
	b int
	m int
	k int // 64 - b, the number of bits available for the rank computation

	alphaM float64

	// sparseCapacity is the maximum number of entries the sparse tier may
	// hold before it is upgraded to dense.
	sparseCapacity int
}

// newPrecision validates b and derives the constants used throughout the
// sketch. It returns ErrInvalidPrecision if b is out of range.
func newPrecision(b int) (*precision, error) {
	if b < minimumPrecision || b > maximumPrecision {
		return nil, errors.Wrapf(ErrInvalidPrecision, "got %d", b)
	}

	m := 1 << uint(b)

	return &precision{
		b:              b,
		m:              m,
		k:              64 - b,
		alphaM:         alphaM(m),
		sparseCapacity: sparseCapacity(m),
	}, nil
}

// alphaM computes the HyperLogLog bias-correction constant alpha for a given
// m = 2^b. The three small-m special cases are the values from the original
// Flajolet et al. paper; the general formula is used for all larger m.
func alphaM(m int) float64 {
	switch m {
	case 16:
		return 0.673
	case 32:
		return 0.697
	case 64:
		return 0.709
	default:
		fm := float64(m)
		return 0.7213 / (1.0 + 1.079/fm)
	}
}

// sparseCapacity determines the maximum number of sparse entries allowed
// before the representation is upgraded to dense. It is never negative.
func sparseCapacity(m int) int {
	c := m/15 - 10
	if c < 0 {
		return 0
	}
	return c
}

// round converts a float64 cardinality estimate to the nearest uint64,
// never returning a negative value.
func round(f float64) uint64 {
	if f < 0 {
		return 0
	}
	return uint64(math.Round(f))
}
