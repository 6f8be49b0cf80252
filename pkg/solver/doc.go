/*
Package solver derives skeletal bone rotations from MediaPipe-style landmarks.

It implements ports.Solver natively: the pose solve rigs arms, hands, hips, spine
and optionally legs from the 33 pose landmarks; the hand solve rigs the wrist and
the fifteen finger segments from the 21 hand landmarks. Rotations are Euler angles
in radians, clamped to human limits.

Rig sides are mirrored with respect to the tracked subject: the camera sees the
subject's left arm on the right side of the image, and it drives the avatar's
right arm.

Landmark count contract:

  - An empty frame means "not detected" and yields a nil result.
  - A frame with fewer landmarks than required fails with domain.ErrIncompleteFrame.
  - Extra landmarks are ignored.
*/
package solver
