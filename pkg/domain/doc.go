/*
Package domain contains the core data model of the riggen converter.

It defines the landmark input side (Landmark, Frame, Sequence), the rig output
side (RigResult, Record, OutputSequence) and the sentinel errors shared by the
converter, the solver and the adapters. The package is kept free of I/O.

# Key Entities

  - Landmark: a detected 3D keypoint with an optional visibility score.
  - Frame: the landmarks of one body part at one instant (33 for pose, 21 per hand).
  - Sequence: the frames of one body part, ordered by video frame index.
  - RigResult: the solver output for one frame, bone name to rotation.
  - Record: the three rig results of one frame, encoded as a 3-element JSON array.
*/
package domain
