package solver

import "github.com/aretw0/riggen/pkg/domain"

func vis(v float64) *float64 { return &v }

// standingPose returns a MediaPipe world-space pose (meters, hips at origin, Y down)
// of a subject standing with arms slightly raised and fully visible.
func standingPose() domain.Frame {
	frame := make(domain.Frame, PoseLandmarks)
	for i := range frame {
		frame[i] = domain.Landmark{Y: -0.6, Visibility: vis(0.99)}
	}
	set := func(i int, x, y, z float64) {
		frame[i] = domain.Landmark{X: x, Y: y, Z: z, Visibility: vis(0.99)}
	}

	set(leftShoulder, 0.18, -0.50, 0.00)
	set(rightShoulder, -0.18, -0.50, 0.02)
	set(leftElbow, 0.35, -0.35, -0.05)
	set(rightElbow, -0.35, -0.34, -0.03)
	set(leftWrist, 0.45, -0.20, -0.10)
	set(rightWrist, -0.46, -0.18, -0.08)
	set(leftPinky, 0.48, -0.15, -0.11)
	set(rightPinky, -0.49, -0.14, -0.09)
	set(leftIndex, 0.50, -0.17, -0.12)
	set(rightIndex, -0.50, -0.16, -0.10)
	set(leftHip, 0.10, 0.00, 0.00)
	set(rightHip, -0.10, 0.00, 0.01)
	set(leftKnee, 0.11, 0.40, -0.02)
	set(rightKnee, -0.12, 0.41, 0.00)
	set(leftAnkle, 0.11, 0.80, 0.03)
	set(rightAnkle, -0.12, 0.82, 0.04)
	return frame
}

// openHand returns 21 hand landmarks of a flat, open hand with fingers pointing up (-Y).
func openHand() domain.Frame {
	pts := [][3]float64{
		{0, 0, 0},                                                                    // wrist
		{-0.03, -0.02, 0}, {-0.05, -0.04, 0}, {-0.065, -0.06, 0}, {-0.075, -0.08, 0}, // thumb
		{-0.02, -0.08, 0}, {-0.022, -0.11, 0}, {-0.023, -0.13, 0}, {-0.024, -0.15, 0}, // index
		{0.00, -0.085, 0}, {0.00, -0.12, 0}, {0.00, -0.14, 0}, {0.00, -0.16, 0}, // middle
		{0.02, -0.08, 0}, {0.022, -0.11, 0}, {0.023, -0.13, 0}, {0.024, -0.145, 0}, // ring
		{0.04, -0.07, 0}, {0.045, -0.09, 0}, {0.048, -0.105, 0}, {0.05, -0.12, 0}, // little
	}
	frame := make(domain.Frame, len(pts))
	for i, p := range pts {
		frame[i] = domain.Landmark{X: p[0], Y: p[1], Z: p[2]}
	}
	return frame
}
