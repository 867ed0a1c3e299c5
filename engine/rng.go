package engine

// RNG is a deterministic 48-bit linear congruential generator with position
// tracking. It produces the same sequence as java.util.Random for a given
// seed, so published maze seeds keep producing the same caves.
// Every draw in carving, placement and play goes through one RNG.
type RNG struct {
	seed  int64
	state uint64
	pos   int64
}

const (
	lcgMultiplier = 0x5DEECE66D
	lcgAddend     = 0xB
	lcgMask       = (1 << 48) - 1
)

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed:  seed,
		state: (uint64(seed) ^ lcgMultiplier) & lcgMask,
	}
}

func (r *RNG) next(bits uint) int32 {
	r.state = (r.state*lcgMultiplier + lcgAddend) & lcgMask
	return int32(r.state >> (48 - bits))
}

// Intn returns a uniformly distributed integer in [0, n). It panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("engine: RNG.Intn called with non-positive bound")
	}
	r.pos++
	bound := int32(n)
	v := r.next(31)
	m := bound - 1
	if bound&m == 0 {
		return int((int64(bound) * int64(v)) >> 31)
	}
	for u := v; ; u = r.next(31) {
		v = u % bound
		if u-v+m >= 0 {
			return int(v)
		}
	}
}

// Bool returns a fair coin flip.
func (r *RNG) Bool() bool {
	r.pos++
	return r.next(1) != 0
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
