package hll

// linearCountingThreshold holds the empirical tau(b) values from the
// Heule-Nunkesser-Hall analysis used to decide between the LinearCounting
// estimate and the (bias-corrected) raw HyperLogLog estimate. Index 0
// corresponds to b=4; the table is extended through b=18 even though New
// only accepts b up to 16, so that estimator.go and bias.go share a single
// consistent precision range.
var linearCountingThreshold = [...]float64{
	10, 20, 40, 80, 220, 400, 900, 1800, 3100,
	6500, 11500, 20000, 50000, 120000, 350000,
}

// tau returns the LinearCounting/raw-estimate switch threshold for
// precision b.
func tau(b int) float64 {
	return linearCountingThreshold[b-minimumPrecision]
}
