// Package gas implements the core 2D elastic-particle simulation.
//
// A [Cloud] holds a fixed, ordered set of circular bodies confined to a
// rectangular [Arena]. Each [Cloud.Step] call advances the physical state
// in two phases:
//
//   - free motion integration plus mirrored wall reflection, per body
//   - a single pass of pairwise equal-mass elastic collision resolution,
//     over unordered pairs in ascending index order
//
// The step is a pure per-frame transform: no goroutines, no hidden state,
// no errors. Degenerate geometry (exactly coincident centers, pairs already
// separating) is skipped rather than signaled.
//
// # Energy Conservation
//
// Wall reflections and pair resolutions both conserve kinetic energy, so
// [Cloud.KineticEnergy] should stay constant over a run up to floating-point
// noise; the sim runner tracks the relative drift.
package gas
