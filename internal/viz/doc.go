// Package viz provides the terminal front end.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: steps the simulator on every tick and draws the curve
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Surface]: adapts a Canvas to the drawing interface the curve uses
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Mouse - Move the pointer the control points follow
//	Space - Pause/Resume simulation
//	N     - Step one frame while paused
//	C     - Move the pointer to the center
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// The visualization supports recording sessions as GIF animations using the
// G key. Recordings are saved to the current directory.
package viz
