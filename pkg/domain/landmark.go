package domain

// Landmark is a single detected keypoint.
// Visibility and Score are optional; MediaPipe emits visibility, TFJS emits score.
type Landmark struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          float64  `json:"z"`
	Visibility *float64 `json:"visibility,omitempty"`
	Score      *float64 `json:"score,omitempty"`
}

// Confidence returns the visibility of the landmark, falling back to score.
// A landmark without either reports zero.
func (l Landmark) Confidence() float64 {
	if l.Visibility != nil {
		return *l.Visibility
	}
	if l.Score != nil {
		return *l.Score
	}
	return 0
}

// Frame is the ordered set of landmarks of one body part at one instant.
// An empty frame means the body part was not detected.
type Frame []Landmark

// Detected reports whether the frame carries any landmark.
func (f Frame) Detected() bool {
	return len(f) > 0
}

// Clone returns a copy of the frame that does not share its backing array.
func (f Frame) Clone() Frame {
	if f == nil {
		return nil
	}
	out := make(Frame, len(f))
	copy(out, f)
	return out
}

// Sequence is the ordered list of frames of one body part, indexed by video frame.
type Sequence []Frame

// Input groups the three frame-aligned sequences fed to the converter.
type Input struct {
	Pose      Sequence `json:"pose"`
	LeftHand  Sequence `json:"hand_left"`
	RightHand Sequence `json:"hand_right"`
}

// Len returns the number of frames to convert, taken from the pose sequence.
func (in Input) Len() int {
	return len(in.Pose)
}
