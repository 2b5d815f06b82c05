// Package sim owns the curve's simulation state and drives it frame by frame.
//
// A [Scene] holds the four control points, the two spring targets and the
// surface size. It is the single owner of that state: pointer and resize
// events are method calls on it, applied between frames by whichever front
// end drives the [Simulator].
//
// The [Simulator] advances the scene one frame at a time: spring step for
// both free points, then boundary repulsion for both, then drawing. [Simulator.Loop]
// repeats that until its [Scheduler] says stop; [Simulator.Run] does the same
// headlessly against a scripted pointer and records the trajectory.
package sim
