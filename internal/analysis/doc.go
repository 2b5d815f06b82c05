// Package analysis characterizes recorded control point trajectories.
//
//   - [PowerSpectrum]: magnitude spectrum of a series (go-dsp FFT)
//   - [DominantFrequency]: strongest oscillation frequency in Hz
//   - [NewPhasePortrait]: position/velocity trajectory of one axis
//
// # Example
//
//	xs := analysis.Column(result.States, 0)
//	hz := analysis.DominantFrequency(xs, 60)
package analysis
