package sim

import "golang.org/x/exp/rand"

// Streams derives one independent PCG stream per path from a base seed, so
// path p draws the same numbers regardless of which worker runs it.
type Streams struct {
	seed uint64
}

func NewStreams(seed uint64) Streams {
	return Streams{seed: seed}
}

func (s Streams) Path(p int) Normal {
	return rand.New(rand.NewSource(splitmix64(s.seed + uint64(p)*0x9e3779b97f4a7c15)))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
