package solver

import (
	"testing"

	"github.com/aretw0/riggen/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSolveHand_OpenHand(t *testing.T) {
	for _, side := range []domain.Side{domain.SideLeft, domain.SideRight} {
		t.Run(string(side), func(t *testing.T) {
			hand := solveHand(openHand(), side)
			prefix := string(side)

			wrist := hand[prefix+"Wrist"]
			assert.GreaterOrEqual(t, wrist.X, -0.3)
			assert.LessOrEqual(t, wrist.X, 0.3)

			// An open hand barely curls: every segment stays well short of a full bend.
			for _, digit := range []string{"Index", "Middle", "Ring", "Little"} {
				for _, seg := range segments {
					curl := hand[prefix+digit+seg].Z
					assert.InDelta(t, 0, curl, 1.0, "%s%s%s", prefix, digit, seg)
				}
			}
		})
	}
}

func TestRigFinger_ThumbProximalLimits(t *testing.T) {
	for _, bend := range []float64{-1, -0.5, 0, 0.25, 0.5, 1} {
		right := rigFinger(bend, "Thumb", "Proximal", domain.SideRight)
		assert.True(t, right.X >= -0.6 && right.X <= 0.3)
		assert.True(t, right.Y >= -1 && right.Y <= 0.3)
		assert.True(t, right.Z >= -0.6 && right.Z <= 0.3)

		left := rigFinger(bend, "Thumb", "Proximal", domain.SideLeft)
		assert.True(t, left.X >= -0.6 && left.X <= 0.3)
		assert.True(t, left.Y >= -0.3 && left.Y <= 1)
		assert.True(t, left.Z >= -0.3 && left.Z <= 0.6)
	}
}

func TestRigFinger_ThumbRestingOffset(t *testing.T) {
	// Without bend the distal thumb sits at its resting offset.
	got := rigFinger(0, "Thumb", "Distal", domain.SideRight)
	assert.InDelta(t, -0.2, got.X, 1e-9)
	assert.InDelta(t, 0.1, got.Y, 1e-9)
	assert.InDelta(t, 0.2, got.Z, 1e-9)

	mirrored := rigFinger(0, "Thumb", "Distal", domain.SideLeft)
	assert.InDelta(t, -0.1, mirrored.Y, 1e-9)
	assert.InDelta(t, -0.2, mirrored.Z, 1e-9)
}

func TestHandRig_Result(t *testing.T) {
	hand := solveHand(openHand(), domain.SideRight)
	res := hand.Result()
	assert.Len(t, res, len(hand))
	assert.Equal(t, hand["RightWrist"], res["RightWrist"])
}
