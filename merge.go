package hll

import "github.com/pkg/errors"

// ErrIncompatiblePrecision is returned by Merge when the two sketches have
// different precisions.
var ErrIncompatiblePrecision = errors.New("cannot merge sketches with different precision")

// Merge unions other into the receiver in place. Both sketches must share
// the same precision, or ErrIncompatiblePrecision is returned and neither
// sketch is modified. After a successful merge, s.Count estimates the
// cardinality of the union of the two original sketches.
func (s *Sketch) Merge(other *Sketch) error {
	if s.p.b != other.p.b {
		return ErrIncompatiblePrecision
	}

	if s == other {
		return nil
	}

	s.countAdditions += other.countAdditions

	mergeExact(s, other)
	mergeStores(s, other)

	return nil
}

// mergeExact applies spec.md section 4.4's exact-tier rule: the union of
// two exact sets is kept only if both sides were exact and the union still
// fits within capacity; any other combination drops self's exact tier
// (the sparse/dense shadow, maintained throughout, already carries the
// information).
func mergeExact(s, other *Sketch) {
	if s.exact != nil && other.exact != nil {
		for h := range other.exact {
			s.exact.insert(h)
		}
		if s.exact.overCapacity() {
			s.exact = nil
		}
		return
	}

	s.exact = nil
}

// mergeStores unions other's register shadow into self's, upgrading self
// to dense whenever the union would otherwise exceed sparse capacity or
// other is itself dense.
func mergeStores(s, other *Sketch) {
	if other.store == nil {
		return
	}

	if s.store == nil {
		s.store = other.store.copy().(registerStorage)
		return
	}

	otherSparse, otherIsSparse := other.store.(sparseStorage)
	_, selfIsSparse := s.store.(sparseStorage)

	if otherIsSparse && selfIsSparse {
		selfSparse := s.store.(sparseStorage)
		for index, rank := range otherSparse {
			selfSparse.setIfGreater(s.p, index, rank)
		}
		if selfSparse.overCapacity(s.p) {
			s.upgrade()
		}
		return
	}

	// At least one side is dense: self must become dense, then the union
	// is a simple per-register max.
	s.upgrade()
	selfDense := s.store.(denseStorage)

	if otherIsSparse {
		for index, rank := range otherSparse {
			selfDense.setIfGreater(s.p, index, rank)
		}
		return
	}

	otherDense := other.store.(denseStorage)
	for i := 0; i < s.p.m; i++ {
		selfDense.setIfGreater(s.p, uint16(i), otherDense.register(uint16(i)))
	}
}

// MergeAll builds a new sketch by cloning the first non-nil sketch in
// sketches and merging each subsequent non-nil sketch into it. It returns
// nil if every element is nil. All non-nil sketches must share the same
// precision, or ErrIncompatiblePrecision is returned.
func MergeAll(sketches ...*Sketch) (*Sketch, error) {
	var result *Sketch

	for _, sk := range sketches {
		if sk == nil {
			continue
		}
		if result == nil {
			result = sk.Clone()
			continue
		}
		if err := result.Merge(sk); err != nil {
			return nil, err
		}
	}

	return result, nil
}
