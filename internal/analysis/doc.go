// Package analysis characterises recorded runs.
//
//   - [PowerSpectrum]: windowed spectrum of a per-frame series
//   - [DominantPeriod]: wobble period in frames from the spectrum peak
//   - [SettleFrame]: first frame after which a series stays near its final value
//   - [Analyze]: all of the above for a run's samples
//
// # Wobble
//
// A poked jelly rings at a frequency set by stiffness and recovery:
//
//	period, ok := analysis.DominantPeriod(analysis.RadiusSeries(samples))
//	if ok {
//	    fmt.Printf("wobbles every %.1f frames\n", period)
//	}
package analysis
