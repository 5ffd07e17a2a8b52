// Package hll implements a HyperLogLog cardinality estimator: a sketch that
// approximates the number of distinct elements observed in a stream of byte
// slices using bounded memory. Below a small exact threshold the sketch
// reports the true count; beyond it, it reports an estimate with relative
// standard error of approximately 1.04*2^(-b/2) for a configured precision
// b in [4, 16].
//
// Sketch itself is not safe for concurrent use; see the concurrent
// subpackage for a reader/writer-locked wrapper.
package hll

import "github.com/flowsketch/hll/hash"

// defaultHash is used whenever Options.Hash (or FromBytes' hash argument)
// is nil.
var defaultHash HashFunc = hash.Default

// HashFunc hashes an arbitrary byte slice to a 64-bit value. Implementations
// need only be deterministic and well-distributed; cryptographic strength
// is not required. See the hash subpackage for the library's default.
type HashFunc func([]byte) uint64

// Options configures a new Sketch.
type Options struct {
	// Precision is the b parameter, in [4, 16]. Larger values trade memory
	// for accuracy: an array of m = 2^Precision one-byte registers is
	// allocated once the sketch upgrades to its dense representation.
	Precision int

	// DirectCounting enables the exact tier: up to 100 distinct hashes are
	// tracked precisely before the sketch falls back to the probabilistic
	// representation.
	DirectCounting bool

	// Hash is the hash delegate used to turn added byte slices into
	// 64-bit values. If nil, hash.Default is used.
	Hash HashFunc
}

// Sketch is a HyperLogLog cardinality estimator. The zero value is not
// usable; construct one with New.
type Sketch struct {
	p    *precision
	hash HashFunc

	exact exactStorage   // non-nil only while direct counting is active
	store registerStorage // the sparse/dense shadow; always kept current

	countAdditions uint64
}

// New constructs an empty Sketch with the given options. It returns
// ErrInvalidPrecision if opts.Precision is outside [4, 16].
func New(opts Options) (*Sketch, error) {
	p, err := newPrecision(opts.Precision)
	if err != nil {
		return nil, err
	}

	hash := opts.Hash
	if hash == nil {
		hash = defaultHash
	}

	s := &Sketch{
		p:    p,
		hash: hash,
	}

	if opts.DirectCounting {
		s.exact = make(exactStorage)
	} else {
		// Per spec.md section 3, a sketch with direct counting disabled is
		// constructed empty in the sparse tier, not merely "nil until the
		// first Add": ToBytes and Count must see an active representation
		// from the moment New returns.
		s.store = make(sparseStorage)
	}

	return s, nil
}

// Precision returns the precision (b) this sketch was constructed with.
func (s *Sketch) Precision() int {
	return s.p.b
}

// CountAdditions returns the total number of Add calls made against this
// sketch, including duplicates. It never decreases.
func (s *Sketch) CountAdditions() uint64 {
	return s.countAdditions
}

// Add records an observation of data, returning true iff the call changed
// the sketch's state (a new register reached, a new rank reached, or a
// representation transition occurred). CountAdditions is incremented on
// every call regardless of the return value. A nil or empty slice is a
// valid, distinct observation: see DESIGN.md's open-question log.
func (s *Sketch) Add(data []byte) bool {
	h := s.hash(data)
	s.countAdditions++

	changed := false

	if s.exact != nil {
		if s.exact.insert(h) {
			changed = true
		}
		if s.exact.overCapacity() {
			s.exact = nil
			changed = true
		}
	}

	index, rank := splitHash(h, s.p)

	if s.store == nil {
		s.store = make(sparseStorage)
	}

	if s.store.setIfGreater(s.p, index, rank) {
		changed = true
	}

	if s.store.overCapacity(s.p) {
		s.upgrade()
		changed = true
	}

	return changed
}

// upgrade transitions the sparse shadow to dense. It is a no-op if the
// shadow is already dense.
func (s *Sketch) upgrade() {
	sparse, ok := s.store.(sparseStorage)
	if !ok {
		return
	}

	s.store = sparseToDense(s.p, sparse)
}

// sparseToDense allocates a fresh dense array and copies every sparse entry
// into its indexed slot.
func sparseToDense(p *precision, sparse sparseStorage) denseStorage {
	dense := newDenseStorage(p)
	for index, rank := range sparse {
		dense.setIfGreater(p, index, rank)
	}
	return dense
}

// Clone returns a deep copy of s. The two sketches share no mutable state.
func (s *Sketch) Clone() *Sketch {
	clone := &Sketch{
		p:              s.p,
		hash:           s.hash,
		countAdditions: s.countAdditions,
	}

	if s.exact != nil {
		clone.exact = s.exact.copy().(exactStorage)
	}
	if s.store != nil {
		clone.store = s.store.copy().(registerStorage)
	}

	return clone
}

// ExpectedRelativeError returns the relative standard error HyperLogLog is
// expected to achieve at the given precision: approximately 1.04*2^(-b/2).
func ExpectedRelativeError(b int) float64 {
	return 1.04 / sqrtPow2(b)
}

func sqrtPow2(b int) float64 {
	// sqrt(2^b) == 2^(b/2); computed via repeated squaring-friendly shift
	// to avoid pulling in math.Pow for a single call site.
	if b%2 == 0 {
		return float64(uint64(1) << uint(b/2))
	}
	return float64(uint64(1)<<uint(b/2)) * 1.4142135623730951
}
