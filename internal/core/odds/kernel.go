package odds

import "math"

// maxFactorial is the largest n whose factorial fits in a float64.
const maxFactorial = 170

// Kernel evaluates Poisson probabilities against a lazily grown factorial
// table. A Kernel is not safe for concurrent use; give each pricing run its own.
type Kernel struct {
	facts []float64
}

func NewKernel() *Kernel {
	return &Kernel{facts: []float64{1}}
}

// Factorial returns n!. Negative n yields NaN and n above 170 yields +Inf.
func (k *Kernel) Factorial(n int) float64 {
	switch {
	case n < 0:
		return math.NaN()
	case n > maxFactorial:
		return math.Inf(1)
	case n < len(k.facts):
		return k.facts[n]
	}
	val := k.facts[len(k.facts)-1]
	for i := len(k.facts); i <= n; i++ {
		val *= float64(i)
		k.facts = append(k.facts, val)
	}
	return val
}

// PMF returns P(X = n) for X ~ Poisson(lambda).
func (k *Kernel) PMF(lambda float64, n int) float64 {
	if n < 0 {
		return 0
	}
	return math.Exp(-lambda) * math.Pow(lambda, float64(n)) / k.Factorial(n)
}

// CDF returns P(X <= n). It is 0 for n < 0.
func (k *Kernel) CDF(lambda float64, n int) float64 {
	if n < 0 {
		return 0
	}
	var sum float64
	for i := 0; i <= n; i++ {
		sum += k.PMF(lambda, i)
	}
	return sum
}

// ProbOver returns P(X > n).
func (k *Kernel) ProbOver(lambda float64, n int) float64 {
	return 1 - k.CDF(lambda, n)
}

// ProbUnder returns P(X < n).
func (k *Kernel) ProbUnder(lambda float64, n int) float64 {
	return k.CDF(lambda, n-1)
}

// AtLeast returns P(X >= n).
func (k *Kernel) AtLeast(lambda float64, n int) float64 {
	return 1 - k.CDF(lambda, n-1)
}
