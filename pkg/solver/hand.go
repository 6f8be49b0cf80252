package solver

import (
	"math"

	"github.com/aretw0/riggen/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// MediaPipe hand landmark indices.
const (
	handWrist = 0
	indexMCP  = 5
	littleMCP = 17
)

// Digit names in the order they are rigged.
var digits = []string{"Ring", "Index", "Little", "Thumb", "Middle"}

// Segment names from palm to tip.
var segments = []string{"Proximal", "Intermediate", "Distal"}

// digitBase maps each digit to its first landmark; a digit spans four consecutive indices.
var digitBase = map[string]int{
	"Thumb":  1,
	"Index":  5,
	"Middle": 9,
	"Ring":   13,
	"Little": 17,
}

// HandRig is the hand rig of one frame, keyed by bone name
// (e.g. "LeftWrist", "LeftIndexProximal").
type HandRig map[string]domain.Euler

// Result converts the rig into the generic result map.
func (h HandRig) Result() domain.RigResult {
	out := make(domain.RigResult, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

func solveHand(frame domain.Frame, side domain.Side) HandRig {
	lm := toVecs(frame)
	prefix := string(side)

	// The palm plane runs wrist -> little knuckle -> index knuckle on the right hand,
	// and the other way round on the left.
	a, b := littleMCP, indexMCP
	if side == domain.SideLeft {
		a, b = indexMCP, littleMCP
	}
	wrist := planeRotation(lm[handWrist], lm[a], lm[b])
	wrist.Y = wrist.Z - 0.4

	hand := HandRig{prefix + "Wrist": rigWrist(wrist, side)}

	for _, digit := range digits {
		joints := digitJoints(lm, digit)
		for i, segment := range segments {
			bend := jointAngle(joints[i], joints[i+1], joints[i+2])
			hand[prefix+digit+segment] = finiteEuler(rigFinger(bend, digit, segment, side))
		}
	}

	return hand
}

// digitJoints returns the wrist followed by the four landmarks of the digit.
func digitJoints(lm []r3.Vec, digit string) [5]r3.Vec {
	base := digitBase[digit]
	return [5]r3.Vec{lm[handWrist], lm[base], lm[base+1], lm[base+2], lm[base+3]}
}

func rigWrist(w domain.Euler, side domain.Side) domain.Euler {
	invert := sign(side)

	lo, hi := -1.2, 0.6
	if side == domain.SideLeft {
		lo, hi = -0.6, 1.6
	}

	return finiteEuler(domain.Euler{
		X: clamp(w.X*2*invert, -0.3, 0.3),
		Y: clamp(w.Y*2.3, lo, hi),
		Z: w.Z * -2.3 * invert,
	})
}

// rigFinger turns a normalized joint bend into a segment rotation.
// Fingers curl around Z only; the thumb spreads over all three axes.
func rigFinger(bend float64, digit, segment string, side domain.Side) domain.Euler {
	invert := sign(side)

	if digit != "Thumb" {
		lo, hi := -math.Pi, 0.0
		if side == domain.SideLeft {
			lo, hi = 0, math.Pi
		}
		return domain.Euler{Z: clamp(bend*-math.Pi*invert, lo, hi)}
	}

	damp, start := thumbParams(segment, invert)
	x := start.X + bend*-math.Pi*damp.X
	y := start.Y + bend*-math.Pi*damp.Y*invert
	z := start.Z + bend*-math.Pi*damp.Z*invert

	if segment != "Proximal" {
		return domain.Euler{X: clamp(x, -2, 2), Y: clamp(y, -2, 2), Z: clamp(z, -2, 2)}
	}

	if side == domain.SideRight {
		return domain.Euler{X: clamp(x, -0.6, 0.3), Y: clamp(y, -1, 0.3), Z: clamp(z, -0.6, 0.3)}
	}
	return domain.Euler{X: clamp(x, -0.6, 0.3), Y: clamp(y, -0.3, 1), Z: clamp(z, -0.3, 0.6)}
}

// thumbParams returns the per-segment dampening and resting offset of the thumb.
func thumbParams(segment string, invert float64) (damp, start domain.Euler) {
	switch segment {
	case "Proximal":
		return domain.Euler{X: 2.2, Y: 2.2, Z: 0.5}, domain.Euler{X: 1.2, Y: 1.1 * invert, Z: 0.2 * invert}
	case "Intermediate":
		return domain.Euler{X: 0, Y: 0.7, Z: 0.5}, domain.Euler{X: -0.2, Y: 0.1 * invert, Z: 0.2 * invert}
	default:
		return domain.Euler{X: 0, Y: 1, Z: 0.5}, domain.Euler{X: -0.2, Y: 0.1 * invert, Z: 0.2 * invert}
	}
}
