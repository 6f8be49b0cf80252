package solver

import (
	"math"

	"github.com/aretw0/riggen/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

func toVec(l domain.Landmark) r3.Vec {
	return r3.Vec{X: l.X, Y: l.Y, Z: l.Z}
}

func toVecs(f domain.Frame) []r3.Vec {
	out := make([]r3.Vec, len(f))
	for i, l := range f {
		out[i] = toVec(l)
	}
	return out
}

// unit is r3.Unit without the NaN result for the zero vector.
func unit(v r3.Vec) r3.Vec {
	if r3.Norm(v) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(v)
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}

// remap scales v from [lo, hi] into [0, 1], clamped.
func remap(v, lo, hi float64) float64 {
	return clamp((v-lo)/(hi-lo), 0, 1)
}

func angle2D(cx, cy, ex, ey float64) float64 {
	return math.Atan2(ey-cy, ex-cx)
}

// normalizeRadians folds an angle onto a half turn and scales it to [-1, 1].
func normalizeRadians(r float64) float64 {
	if r >= math.Pi/2 {
		r -= 2 * math.Pi
	}
	if r <= -math.Pi/2 {
		r += 2 * math.Pi
		r = math.Pi - r
	}
	return r / math.Pi
}

// normalizeAngle wraps an angle into [-Pi, Pi] and scales it to [-1, 1].
func normalizeAngle(r float64) float64 {
	a := math.Mod(r, 2*math.Pi)
	switch {
	case a > math.Pi:
		a -= 2 * math.Pi
	case a < -math.Pi:
		a += 2 * math.Pi
	}
	return a / math.Pi
}

// findRotation returns the normalized rotation of the segment a->b,
// one planar angle per axis.
func findRotation(a, b r3.Vec) domain.Euler {
	return domain.Euler{
		X: normalizeRadians(angle2D(a.Z, a.X, b.Z, b.X)),
		Y: normalizeRadians(angle2D(a.Z, a.Y, b.Z, b.Y)),
		Z: normalizeRadians(angle2D(a.X, a.Y, b.X, b.Y)),
	}
}

// jointAngle returns the normalized angle at b between the segments b->a and b->c.
func jointAngle(a, b, c r3.Vec) float64 {
	v1 := unit(r3.Sub(a, b))
	v2 := unit(r3.Sub(c, b))
	return normalizeRadians(math.Acos(clamp(r3.Dot(v1, v2), -1, 1)))
}

// rollPitchYaw returns the normalized orientation of the segment a->b.
func rollPitchYaw(a, b r3.Vec) domain.Euler {
	return domain.Euler{
		X: normalizeAngle(angle2D(a.Z, a.Y, b.Z, b.Y)),
		Y: normalizeAngle(angle2D(a.Z, a.X, b.Z, b.X)),
		Z: normalizeAngle(angle2D(a.X, a.Y, b.X, b.Y)),
	}
}

// planeRotation returns the normalized orientation of the plane through a, b and c,
// with a->b as the X axis.
func planeRotation(a, b, c r3.Vec) domain.Euler {
	qb := r3.Sub(b, a)
	qc := r3.Sub(c, a)
	unitZ := unit(r3.Cross(qb, qc))
	unitX := unit(qb)
	unitY := r3.Cross(unitZ, unitX)

	alpha := math.Atan2(-unitZ.Y, unitZ.Z)
	beta := math.Asin(clamp(unitZ.X, -1, 1))
	gamma := math.Atan2(-unitY.X, unitX.X)

	return domain.Euler{
		X: normalizeAngle(alpha),
		Y: normalizeAngle(beta),
		Z: normalizeAngle(gamma),
	}
}

type spherical struct {
	theta float64
	phi   float64
}

// legSpherical returns spherical coordinates of v with the leg axis mapping:
// theta is measured in the Y/Z plane and phi from the X axis.
func legSpherical(v r3.Vec) spherical {
	n := r3.Norm(v)
	if n == 0 {
		return spherical{}
	}
	return spherical{
		theta: math.Atan2(v.Z, v.Y),
		phi:   math.Acos(clamp(v.X/n, -1, 1)),
	}
}

func segmentSpherical(a, b r3.Vec) spherical {
	s := legSpherical(r3.Sub(b, a))
	return spherical{theta: normalizeAngle(s.theta), phi: normalizeAngle(s.phi)}
}

// relativeSpherical returns the bend of b->c relative to a->b.
func relativeSpherical(a, b, c r3.Vec) spherical {
	s1 := legSpherical(unit(r3.Sub(b, a)))
	s2 := legSpherical(unit(r3.Sub(c, b)))
	return spherical{
		theta: normalizeAngle(s1.theta - s2.theta),
		phi:   normalizeAngle(s1.phi - s2.phi),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func finiteEuler(e domain.Euler) domain.Euler {
	return domain.Euler{X: finite(e.X), Y: finite(e.Y), Z: finite(e.Z)}
}

func scaleEuler(e domain.Euler, f float64) domain.Euler {
	return domain.Euler{X: e.X * f, Y: e.Y * f, Z: e.Z * f}
}

// sign returns 1 for the right side and -1 for the left.
func sign(side domain.Side) float64 {
	if side == domain.SideLeft {
		return -1
	}
	return 1
}
