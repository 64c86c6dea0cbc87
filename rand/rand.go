// rand/rand.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	gomath "math"

	"github.com/MichaelTJones/pcg"
	"github.com/go-gl/mathgl/mgl64"
)

///////////////////////////////////////////////////////////////////////////
// Random numbers.

// Rand is a small deterministic random number generator; sweeps create
// one per worker so that results are reproducible for a given seed.
type Rand struct {
	r *pcg.PCG32
}

func New() Rand {
	return Rand{r: pcg.NewPCG32()}
}

// Make returns a Rand seeded with s.
func Make(s int64) Rand {
	r := New()
	r.Seed(s)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

// Float64 returns a uniformly-distributed value in [0,1).
func (r *Rand) Float64() float64 {
	hi, lo := uint64(r.r.Random()), uint64(r.r.Random())
	return float64((hi<<21)^(lo>>11)) / (1 << 53)
}

// Range returns a uniformly-distributed value in [lo,hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Vec3 returns a vector with each component uniform in [lo,hi).
func (r *Rand) Vec3(lo, hi float64) mgl64.Vec3 {
	return mgl64.Vec3{r.Range(lo, hi), r.Range(lo, hi), r.Range(lo, hi)}
}

// Quat returns a uniformly-distributed random rotation, following
// Shoemake's subgroup algorithm.
func (r *Rand) Quat() mgl64.Quat {
	u1, u2, u3 := r.Float64(), r.Float64(), r.Float64()
	a, b := gomath.Sqrt(1-u1), gomath.Sqrt(u1)
	s2, c2 := gomath.Sincos(2 * gomath.Pi * u2)
	s3, c3 := gomath.Sincos(2 * gomath.Pi * u3)
	return mgl64.Quat{W: b * c3, V: mgl64.Vec3{a * s2, a * c2, b * s3}}
}

// Sample uniformly randomly samples one of the provided values.
func Sample[T any](r *Rand, t ...T) T {
	return t[r.Intn(len(t))]
}

// Drop-in replacement for the subset of math/rand that we use...
var r Rand

func init() {
	r = New()
}

func Seed(s int64) {
	r.Seed(s)
}

func Intn(n int) int {
	return r.Intn(n)
}

func Float64() float64 {
	return r.Float64()
}
