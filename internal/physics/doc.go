// Package physics holds the forces acting on the curve's free control points.
//
//   - [Spring]: damped pull toward a target, one explicit step per frame
//   - [Bounds]: one-sided linear push away from the surface edges
//
// Both operate in place on a position/velocity pair and are applied once per
// frame in that order: spring first, then bounds. Swapping the order changes
// how points behave near an edge.
package physics
