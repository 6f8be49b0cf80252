package domain

import "fmt"

// RigResult is the solver output for one frame: bone or joint name to rotation,
// and for some joints a position. The converter passes it through untouched.
type RigResult map[string]any

// Euler is a rotation in radians around the X, Y and Z axes.
type Euler struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
	Z float64 `json:"z" mapstructure:"z"`
}

// Position is a translation in model space.
type Position struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
	Z float64 `json:"z" mapstructure:"z"`
}

// Side selects which hand a landmark set belongs to.
type Side string

const (
	SideLeft  Side = "Left"
	SideRight Side = "Right"
)

// Validate returns ErrInvalidSide for anything but Left or Right.
func (s Side) Validate() error {
	switch s {
	case SideLeft, SideRight:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSide, string(s))
	}
}

// Runtime names the pose-estimation runtime that produced the landmarks.
type Runtime string

const (
	RuntimeMediapipe Runtime = "mediapipe"
	RuntimeTFJS      Runtime = "tfjs"
)

// ImageSize is the pixel size of the source video, used to normalize TFJS screen landmarks.
type ImageSize struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// PoseOptions configures a pose solve.
type PoseOptions struct {
	Runtime    Runtime    `json:"runtime" yaml:"runtime"`
	EnableLegs bool       `json:"enable_legs" yaml:"enable_legs"`
	ImageSize  *ImageSize `json:"image_size,omitempty" yaml:"image_size,omitempty"`
}

// DefaultPoseOptions returns the options used by the converter unless overridden:
// MediaPipe landmarks, legs disabled.
func DefaultPoseOptions() PoseOptions {
	return PoseOptions{
		Runtime:    RuntimeMediapipe,
		EnableLegs: false,
	}
}
