/*
Package ports defines the driven ports (interfaces) of the riggen converter.

These interfaces decouple the conversion loop from the solver and from where
landmarks come from or results go to, so each can be swapped for a test stub or
another backend.

# Key Interfaces

  - Solver: turns one frame of landmarks into a rig result (pose or hand).
  - SequenceLoader: reads a landmark sequence from a named source.
  - ResultStore: persists and retrieves converted output sequences.
*/
package ports
