/*
Package riggen converts pose-estimation landmark sequences into rig-ready bone rotations.

It reads three frame-aligned sequences (body pose, left hand, right hand), solves every
frame through an injected Solver and writes one record per frame. A record is the
3-element array

	[{"pose": …}, {"hand_left": …}, {"hand_right": …}]

and the output file is the JSON array of records, indented with two spaces.

# Concept

The converter follows a Hexagonal Architecture: the kinematics (ports.Solver), the
landmark source (ports.SequenceLoader) and the result destination (ports.ResultStore)
are all injected. The defaults are the native solver in pkg/solver and JSON files on
the local filesystem, which mirrors the original extraction pipeline:

	pose3d.json + hand_left3d.json + hand_right3d.json -> holistic_rigged_output.json

# Guarantees

  - Length: N input frames yield exactly N records.
  - Order: record i depends only on frame i of each input, also when frames are solved in parallel.
  - All-or-nothing: a length mismatch or a solver failure aborts the run before anything is written.
  - Determinism: identical inputs and a deterministic solver produce byte-identical output.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/riggen"
	)

	func main() {
		conv := riggen.New(riggen.WithConcurrency(4))

		if _, err := conv.Run(context.Background(), riggen.DefaultJob()); err != nil {
			log.Fatal(err)
		}
	}
*/
package riggen
