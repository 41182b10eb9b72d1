package benchmark

import (
	"math"
	"time"
)

// Stats summarizes the successful run durations of one case.
type Stats struct {
	Count  int
	Mean   time.Duration
	Min    time.Duration
	Max    time.Duration
	StdDev time.Duration
}

// Summarize computes aggregate statistics over samples. StdDev is the
// sample standard deviation and stays zero below two samples.
func Summarize(samples []time.Duration) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	min, max := samples[0], samples[0]
	var sum time.Duration
	for _, s := range samples {
		sum += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	mean := sum / time.Duration(len(samples))

	var stdDev time.Duration
	if len(samples) > 1 {
		meanNs := float64(sum) / float64(len(samples))
		var sq float64
		for _, s := range samples {
			d := float64(s) - meanNs
			sq += d * d
		}
		stdDev = time.Duration(math.Sqrt(sq / float64(len(samples)-1)))
	}

	return Stats{
		Count:  len(samples),
		Mean:   mean,
		Min:    min,
		Max:    max,
		StdDev: stdDev,
	}
}
