// Package dynamo provides the core numeric primitives shared by the curve
// simulation.
//
// The package defines the value types and errors the other packages build on:
//
//   - [Vec2]: immutable 2D vector with add, subtract, scale, length and normalize
//   - [Clamp]: scalar clamp into a closed interval
//   - [SimulationError]: error carrying the frame at which a run failed
//
// # Example
//
//	a := dynamo.V(3, 4)
//	d := a.Normalize() // (0.6, 0.8)
//	l := a.Len()       // 5
//
// # Logging
//
// The package holds the process logger used by every other package. It is
// silent until [SetLogger] installs a handler.
package dynamo
