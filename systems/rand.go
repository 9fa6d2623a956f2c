package systems

// Rand is the uniform random source every probabilistic rule draws from.
// *math/rand.Rand satisfies it; tests inject deterministic sequences.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// RandRange returns a uniform value in [lo, hi).
func RandRange(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
