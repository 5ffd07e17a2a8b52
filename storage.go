package hll

// storage is implemented by every tier (exact, sparse, dense) and covers the
// operations the sketch needs without knowing which concrete tier is
// active.
type storage interface {
	// sizeInBytes returns the number of payload bytes (excluding the header)
	// required to serialize this storage.
	sizeInBytes() int

	// writeBytes serializes the storage's payload into bytes, which is
	// guaranteed to have length sizeInBytes().
	writeBytes(bytes []byte)

	// copy returns a deep copy of this storage.
	copy() storage
}

// registerStorage is the add-on interface implemented by the two
// probabilistic tiers (sparse, dense). The exact tier does not implement
// it: there is no notion of a "register" until the sketch has upgraded out
// of direct counting.
type registerStorage interface {
	storage

	// setIfGreater sets the rank of register index to rank if and only if
	// rank is greater than the register's current value. It reports
	// whether the register changed.
	setIfGreater(p *precision, index uint16, rank uint8) bool

	// register returns the current rank stored at index, or 0 if the
	// register has never been observed.
	register(index uint16) uint8

	// overCapacity reports whether this storage has grown beyond the
	// limits the precision allows and should be upgraded.
	overCapacity(p *precision) bool

	// indicator computes Z^-1 = sum(2^-rank) over all m registers (the
	// "indicator function" from the HyperLogLog paper) and V, the number
	// of registers that have never been observed.
	indicator(p *precision) (zInverse float64, zeros int)
}
