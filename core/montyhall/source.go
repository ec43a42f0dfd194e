package montyhall

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
)

// Seeder produces the two 64-bit words used to seed a worker's generator.
type Seeder func() (uint64, uint64, error)

// EntropySeeder reads a seed from the operating system's entropy source.
func EntropySeeder() (uint64, uint64, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, 0, err
	}
	return binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]), nil
}

// FixedSeeder always returns the same seed. Two generators built from it
// produce identical streams.
func FixedSeeder(hi, lo uint64) Seeder {
	return func() (uint64, uint64, error) {
		return hi, lo, nil
	}
}

// NewSource builds an independent PCG generator seeded by seed.
func NewSource(seed Seeder) (*mrand.Rand, error) {
	if seed == nil {
		seed = EntropySeeder
	}
	hi, lo, err := seed()
	if err != nil {
		return nil, err
	}
	return mrand.New(mrand.NewPCG(hi, lo)), nil
}
