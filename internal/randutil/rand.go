// Package randutil derives PCG generators for the simulator and its workers.
package randutil

import rand "math/rand/v2"

// added to the seed for the second PCG word
const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG generator whose stream depends only on seed. Both PCG
// words are derived with a splitmix finaliser so nearby seeds diverge.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewUnseeded returns a generator seeded from the runtime's random source, so
// sequences differ between processes.
func NewUnseeded() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Fork derives n independent seeds from parent. Workers seeded this way
// reproduce the same streams for the same parent state.
func Fork(parent *rand.Rand, n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = parent.Int64()
	}
	return seeds
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
