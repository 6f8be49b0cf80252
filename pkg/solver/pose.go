package solver

import (
	"fmt"
	"math"

	"github.com/aretw0/riggen/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gonum.org/v1/gonum/spatial/r3"
)

// MediaPipe pose landmark indices, named after the tracked subject.
const (
	leftShoulder  = 11
	rightShoulder = 12
	leftElbow     = 13
	rightElbow    = 14
	leftWrist     = 15
	rightWrist    = 16
	leftPinky     = 17
	rightPinky    = 18
	leftIndex     = 19
	rightIndex    = 20
	leftHip       = 23
	rightHip      = 24
	leftKnee      = 25
	rightKnee     = 26
	leftAnkle     = 27
	rightAnkle    = 28
)

// Offscreen thresholds.
const (
	handMinVisibility = 0.23
	footMinVisibility = 0.63
	maxWorldY         = 0.1
	maxScreenY        = 0.995
	maxHipDepth       = -0.4
)

// Resting upper arm roll, used when the arm cannot be tracked.
const restUpperArmZ = 1.25

// HipsRig carries the hips transform.
type HipsRig struct {
	Position      domain.Position `json:"position" mapstructure:"position"`
	WorldPosition domain.Position `json:"worldPosition" mapstructure:"worldPosition"`
	Rotation      domain.Euler    `json:"rotation" mapstructure:"rotation"`
}

// PoseRig is the body rig of one frame.
type PoseRig struct {
	RightUpperArm domain.Euler `json:"RightUpperArm" mapstructure:"RightUpperArm"`
	RightLowerArm domain.Euler `json:"RightLowerArm" mapstructure:"RightLowerArm"`
	LeftUpperArm  domain.Euler `json:"LeftUpperArm" mapstructure:"LeftUpperArm"`
	LeftLowerArm  domain.Euler `json:"LeftLowerArm" mapstructure:"LeftLowerArm"`
	RightHand     domain.Euler `json:"RightHand" mapstructure:"RightHand"`
	LeftHand      domain.Euler `json:"LeftHand" mapstructure:"LeftHand"`
	RightUpperLeg domain.Euler `json:"RightUpperLeg" mapstructure:"RightUpperLeg"`
	RightLowerLeg domain.Euler `json:"RightLowerLeg" mapstructure:"RightLowerLeg"`
	LeftUpperLeg  domain.Euler `json:"LeftUpperLeg" mapstructure:"LeftUpperLeg"`
	LeftLowerLeg  domain.Euler `json:"LeftLowerLeg" mapstructure:"LeftLowerLeg"`
	Hips          HipsRig      `json:"Hips" mapstructure:"Hips"`
	Spine         domain.Euler `json:"Spine" mapstructure:"Spine"`
}

// Result flattens the rig into the bone-name keyed result map.
func (p PoseRig) Result() (domain.RigResult, error) {
	out := domain.RigResult{}
	if err := mapstructure.Decode(p, &out); err != nil {
		return nil, fmt.Errorf("failed to encode pose rig: %w", err)
	}
	return out, nil
}

type armRig struct {
	upper, lower, hand domain.Euler
}

func solvePose(frame, screen domain.Frame, opts domain.PoseOptions) PoseRig {
	world := toVecs(frame)
	flat := screenVecs(frame, screen, opts)

	right, left := calcArms(world)
	hips, spine := calcHips(world, flat)

	// The subject's left wrist drives the rig's right arm.
	if armOffscreen(frame, flat, leftWrist) {
		right = armRig{upper: domain.Euler{Z: -restUpperArmZ}}
	}
	if armOffscreen(frame, flat, rightWrist) {
		left = armRig{upper: domain.Euler{Z: restUpperArmZ}}
	}

	rig := PoseRig{
		RightUpperArm: right.upper,
		RightLowerArm: right.lower,
		LeftUpperArm:  left.upper,
		LeftLowerArm:  left.lower,
		RightHand:     right.hand,
		LeftHand:      left.hand,
		Hips:          hips,
		Spine:         spine,
	}

	if opts.EnableLegs {
		rUpper, rLower, lUpper, lLower := calcLegs(world)
		if !legOffscreen(frame, hips, leftHip) {
			rig.RightUpperLeg, rig.RightLowerLeg = rUpper, rLower
		}
		if !legOffscreen(frame, hips, rightHip) {
			rig.LeftUpperLeg, rig.LeftLowerLeg = lUpper, lLower
		}
	}

	return rig.finite()
}

// screenVecs returns the screen-space landmarks as vectors.
// Without screen landmarks the world landmarks stand in for them.
func screenVecs(frame, screen domain.Frame, opts domain.PoseOptions) []r3.Vec {
	if screen == nil {
		return toVecs(frame)
	}
	out := toVecs(screen)
	if opts.Runtime == domain.RuntimeTFJS && opts.ImageSize != nil && opts.ImageSize.Width > 0 && opts.ImageSize.Height > 0 {
		for i := range out {
			out[i] = r3.Vec{X: out[i].X / opts.ImageSize.Width, Y: out[i].Y / opts.ImageSize.Height}
		}
	}
	return out
}

func armOffscreen(frame domain.Frame, flat []r3.Vec, wrist int) bool {
	return frame[wrist].Y > maxWorldY ||
		frame[wrist].Confidence() < handMinVisibility ||
		flat[wrist].Y > maxScreenY
}

func legOffscreen(frame domain.Frame, hips HipsRig, hip int) bool {
	return frame[hip].Y > maxWorldY ||
		frame[hip].Confidence() < footMinVisibility ||
		hips.Position.Z > maxHipDepth
}

// calcArms returns the right and left arm rigs.
func calcArms(lm []r3.Vec) (right, left armRig) {
	upperR := findRotation(lm[leftShoulder], lm[leftElbow])
	upperR.Y = jointAngle(lm[rightShoulder], lm[leftShoulder], lm[leftElbow])
	upperL := findRotation(lm[rightShoulder], lm[rightElbow])
	upperL.Y = jointAngle(lm[leftShoulder], lm[rightShoulder], lm[rightElbow])

	lowerR := findRotation(lm[leftElbow], lm[leftWrist])
	lowerR.Y = jointAngle(lm[leftShoulder], lm[leftElbow], lm[leftWrist])
	lowerR.Z = clamp(lowerR.Z, -2.14, 0)
	lowerL := findRotation(lm[rightElbow], lm[rightWrist])
	lowerL.Y = jointAngle(lm[rightShoulder], lm[rightElbow], lm[rightWrist])
	lowerL.Z = clamp(lowerL.Z, -2.14, 0)

	handR := findRotation(lm[leftWrist], lerp(lm[leftPinky], lm[leftIndex], 0.5))
	handL := findRotation(lm[rightWrist], lerp(lm[rightPinky], lm[rightIndex], 0.5))

	right = rigArm(upperR, lowerR, handR, domain.SideRight)
	left = rigArm(upperL, lowerL, handL, domain.SideLeft)
	return right, left
}

// rigArm scales normalized arm rotations into radians and clamps them to human limits.
func rigArm(upper, lower, hand domain.Euler, side domain.Side) armRig {
	invert := sign(side)

	upper.Z *= -2.3 * invert
	upper.Y *= math.Pi * invert
	upper.Y -= lower.X
	upper.Y -= -invert * math.Max(lower.Z, 0)
	upper.X -= 0.3 * invert

	lower.Z *= -2.14 * invert
	lower.Y *= 2.14 * invert
	lower.X *= 2.14 * invert

	upper.X = clamp(upper.X, -0.5, math.Pi)
	lower.X = clamp(lower.X, -0.3, 0.3)

	hand.Y = clamp(hand.Z*2, -0.6, 0.6)
	hand.Z = hand.Z * -2.3 * invert

	return armRig{upper: upper, lower: lower, hand: hand}
}

// calcHips returns the hips transform and the spine rotation.
func calcHips(world, flat []r3.Vec) (HipsRig, domain.Euler) {
	hipCenter := lerp(flat[leftHip], flat[rightHip], 0.5)
	shoulderCenter := lerp(flat[leftShoulder], flat[rightShoulder], 0.5)
	spineLength := r3.Norm(r3.Sub(hipCenter, shoulderCenter))

	var hips HipsRig
	hips.Position = domain.Position{
		X: clamp(hipCenter.X-0.4, -1, 1),
		Z: clamp(spineLength-1, -2, 0),
	}
	hips.WorldPosition = domain.Position{
		X: hips.Position.X,
		Z: hips.Position.Z * math.Pow(hips.Position.Z*-2, 2),
	}
	hips.WorldPosition.X *= hips.WorldPosition.Z

	hips.Rotation = steadyTurn(rollPitchYaw(world[leftHip], world[rightHip]))
	spine := steadyTurn(rollPitchYaw(world[leftShoulder], world[rightShoulder]))

	hips.Rotation = scaleEuler(hips.Rotation, math.Pi)
	return hips, scaleEuler(spine, math.Pi)
}

// steadyTurn stabilizes a normalized torso rotation: it removes the -1/1 jump in
// yaw, stops tilt flipping sides, and fades tilt out as the body turns sideways.
// X is dropped because depth noise makes it unreliable.
func steadyTurn(e domain.Euler) domain.Euler {
	if e.Y > 0.5 {
		e.Y -= 2
	}
	e.Y += 0.5

	if e.Z > 0 {
		e.Z = 1 - e.Z
	}
	if e.Z < 0 {
		e.Z = -1 - e.Z
	}
	e.Z *= 1 - remap(math.Abs(e.Y), 0.2, 0.4)
	e.X = 0
	return e
}

// calcLegs returns the right upper, right lower, left upper and left lower leg rotations.
func calcLegs(lm []r3.Vec) (rUpper, rLower, lUpper, lLower domain.Euler) {
	hipRotation := findRotation(lm[leftHip], lm[rightHip])

	leg := func(hip, knee, ankle int, side domain.Side) (domain.Euler, domain.Euler) {
		upperS := segmentSpherical(lm[hip], lm[knee])
		lowerS := relativeSpherical(lm[hip], lm[knee], lm[ankle])
		upper := domain.Euler{
			X: upperS.theta,
			Y: lowerS.phi,
			Z: upperS.phi - hipRotation.Z,
		}
		lower := domain.Euler{X: -math.Abs(lowerS.theta)}
		return rigLeg(upper, lower, side)
	}

	rUpper, rLower = leg(leftHip, leftKnee, leftAnkle, domain.SideRight)
	lUpper, lLower = leg(rightHip, rightKnee, rightAnkle, domain.SideLeft)
	return rUpper, rLower, lUpper, lLower
}

func rigLeg(upper, lower domain.Euler, side domain.Side) (domain.Euler, domain.Euler) {
	invert := sign(side)
	rigged := domain.Euler{
		X: clamp(upper.X, 0, 0.5) * math.Pi,
		Y: clamp(upper.Y, -0.25, 0.25) * math.Pi,
		Z: clamp(upper.Z, -0.5, 0.5)*math.Pi + invert*0.1,
	}
	return rigged, scaleEuler(lower, math.Pi)
}

func (p PoseRig) finite() PoseRig {
	for _, e := range []*domain.Euler{
		&p.RightUpperArm, &p.RightLowerArm, &p.LeftUpperArm, &p.LeftLowerArm,
		&p.RightHand, &p.LeftHand,
		&p.RightUpperLeg, &p.RightLowerLeg, &p.LeftUpperLeg, &p.LeftLowerLeg,
		&p.Hips.Rotation, &p.Spine,
	} {
		*e = finiteEuler(*e)
	}
	for _, pos := range []*domain.Position{&p.Hips.Position, &p.Hips.WorldPosition} {
		pos.X, pos.Y, pos.Z = finite(pos.X), finite(pos.Y), finite(pos.Z)
	}
	return p
}
