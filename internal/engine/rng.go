package engine

// Rand is a deterministic pseudo-random stream over a 32-bit seed using the
// mulberry32 step function. Identical seed means identical draw sequence on
// any host; every downstream generator depends on that invariant.
//
// A Rand is exclusively owned by one generation run (or one chaos engine) and
// is never shared: exactly one caller advances it in exactly one order. It is
// not safe for concurrent use and is cheap enough to create per run.
type Rand struct {
	state uint32
}

// NewRand creates a stream positioned at the start of the sequence for seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Float64 advances the stream and returns the next value in [0,1).
// Every other draw helper is defined strictly in terms of Float64 so the
// number of underlying draws per call stays auditable.
func (r *Rand) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// Intn returns an int in [0,n). Consumes one draw. n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// Between returns a float in [min,max). Consumes one draw.
func (r *Rand) Between(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// IntBetween returns an int in [min,max]. Consumes one draw.
func (r *Rand) IntBetween(min, max int) int {
	return min + r.Intn(max-min+1)
}

// Chance reports whether a single draw fell below p. Consumes one draw even
// for p <= 0 or p >= 1, so branching on the result never changes draw order.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}

// Pick returns a uniformly chosen element. Consumes one draw.
func (r *Rand) Pick(items []string) string {
	return items[r.Intn(len(items))]
}

// Shuffle permutes n elements with a Fisher-Yates walk, consuming exactly
// n-1 draws for n >= 2 and none otherwise.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// Floats returns the next count values from a fresh stream for seed.
// Convenience for golden-vector tests and the explore scanner.
func Floats(seed uint32, count int) []float64 {
	r := NewRand(seed)
	out := make([]float64, count)
	for i := range out {
		out[i] = r.Float64()
	}
	return out
}
