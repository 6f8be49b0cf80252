package domain

import "errors"

// ErrInputNotFound is returned when a landmark input file does not exist.
var ErrInputNotFound = errors.New("input not found")

// ErrLengthMismatch is returned when the pose and hand sequences differ in frame count.
var ErrLengthMismatch = errors.New("sequence length mismatch")

// ErrSolverFailed wraps any error raised by the solver for a given frame.
var ErrSolverFailed = errors.New("solver failed")

// ErrIncompleteFrame is returned by the solver for a frame that has some, but too few, landmarks.
var ErrIncompleteFrame = errors.New("incomplete landmark frame")

// ErrInvalidSide is returned when a hand solve is requested for an unknown side.
var ErrInvalidSide = errors.New("invalid hand side")

// ErrResultNotFound is returned when a result name cannot be found in the store.
var ErrResultNotFound = errors.New("result not found")
