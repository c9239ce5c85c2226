package odds

import (
	"errors"
	"math"
	"strconv"
)

var ErrDegenerateProbability = errors.New("probability outside (0,1)")

// NoPrice marks a market that cannot be priced. Every helper in this
// package passes it through unchanged and FormatOdd renders it as "N/A".
var NoPrice = math.NaN()

// DefaultBoost is the association boost used by CorrelatedProbability.
const DefaultBoost = 1.15

func IsPrice(o float64) bool { return !math.IsNaN(o) && o > 1 }

// ProbToOdd converts a probability in (0,1) to a decimal odd.
func ProbToOdd(p float64) (float64, error) {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return 0, ErrDegenerateProbability
	}
	return 1 / p, nil
}

// FairOdd is ProbToOdd with the failure folded into NoPrice.
func FairOdd(p float64) float64 {
	o, err := ProbToOdd(p)
	if err != nil {
		return NoPrice
	}
	return o
}

// OddToProb converts a decimal odd to its implied probability. Odds at or
// below 1 clamp to certainty.
func OddToProb(o float64) float64 {
	if o <= 1 {
		return 1
	}
	return 1 / o
}

// ImpliedLambda converts P(X >= 1) into the rate of the underlying Poisson
// process. Degenerate probabilities return 0.
func ImpliedLambda(p float64) float64 {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return 0
	}
	return -math.Log(1 - p)
}

// ApplyMargin inflates the implied probability of odd by marginPct percent.
func ApplyMargin(odd, marginPct float64) float64 {
	if math.IsNaN(odd) || marginPct <= 0 || odd <= 1 {
		return odd
	}
	return FairOdd(1 / odd * (1 + marginPct/100))
}

// FormatOdd renders a price the way the platform accepts it: 0.25 steps
// from 10 upwards, 0.1 steps below, never under 1.01.
func FormatOdd(o float64) string {
	if math.IsNaN(o) {
		return "N/A"
	}
	var rounded float64
	if o >= 10 {
		rounded = math.Round(o*4) / 4
	} else {
		rounded = math.Round(o*10) / 10
	}
	if rounded <= 1.01 {
		return "1.01"
	}
	return strconv.FormatFloat(rounded, 'f', 2, 64)
}

// ParseOdd reads a formatted price back. "N/A" and garbage yield NoPrice.
func ParseOdd(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NoPrice
	}
	return v
}

// CorrelatedProbability approximates the joint probability of two events
// that tend to occur together: the likelier one is boosted (capped at 0.99)
// and multiplied by the other. It is a heuristic, not a copula.
func CorrelatedProbability(pA, pB, boost float64) float64 {
	less, more := math.Min(pA, pB), math.Max(pA, pB)
	return less * math.Min(more*boost, 0.99)
}
