package odds

import (
	"errors"
	"math"
	"testing"
)

func TestFactorialTable(t *testing.T) {
	k := NewKernel()
	if got := k.Factorial(5); got != 120 {
		t.Errorf("5! = %v", got)
	}
	// table grows monotonically; a smaller lookup afterwards hits the memo
	if got := k.Factorial(3); got != 6 {
		t.Errorf("3! = %v", got)
	}
	if !math.IsNaN(k.Factorial(-1)) {
		t.Error("negative factorial should be NaN")
	}
	if !math.IsInf(k.Factorial(171), 1) {
		t.Error("171! should be +Inf")
	}
	if math.IsInf(k.Factorial(170), 1) {
		t.Error("170! should be finite")
	}
}

func TestPMFSumsToOne(t *testing.T) {
	k := NewKernel()
	for _, lambda := range []float64{0, 0.1, 0.511, 2.6, 4.5, 10.5, 20} {
		var sum float64
		for n := 0; n <= 60; n++ {
			sum += k.PMF(lambda, n)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("lambda=%v: sum PMF = %.12f", lambda, sum)
		}
	}
}

func TestPMFLargeKIsZero(t *testing.T) {
	k := NewKernel()
	if got := k.PMF(2.5, 200); got != 0 {
		t.Errorf("PMF(2.5, 200) = %v, want 0", got)
	}
}

func TestCDFAndTails(t *testing.T) {
	k := NewKernel()
	if got := k.CDF(2, -1); got != 0 {
		t.Errorf("CDF(k<0) = %v", got)
	}
	want := math.Exp(-2) * (1 + 2 + 2)
	if got := k.CDF(2, 2); math.Abs(got-want) > 1e-12 {
		t.Errorf("CDF(2,2) = %v, want %v", got, want)
	}
	if got := k.ProbOver(2, 2); math.Abs(got-(1-want)) > 1e-12 {
		t.Errorf("ProbOver = %v", got)
	}
	if got := k.ProbUnder(2, 3); math.Abs(got-want) > 1e-12 {
		t.Errorf("ProbUnder(2,3) = %v, want %v", got, want)
	}
	if got := k.AtLeast(2, 3); math.Abs(got-(1-want)) > 1e-12 {
		t.Errorf("AtLeast(2,3) = %v", got)
	}
}

func TestProbToOdd(t *testing.T) {
	for _, p := range []float64{0, -0.1, 1, 1.5, math.NaN()} {
		if _, err := ProbToOdd(p); !errors.Is(err, ErrDegenerateProbability) {
			t.Errorf("ProbToOdd(%v) err = %v", p, err)
		}
		if IsPrice(FairOdd(p)) {
			t.Errorf("FairOdd(%v) should be NoPrice", p)
		}
	}
	o, err := ProbToOdd(0.4)
	if err != nil || math.Abs(o-2.5) > 1e-12 {
		t.Errorf("ProbToOdd(0.4) = %v, %v", o, err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, o := range []float64{1.01, 1.2, 1.8, 2.5, 3.6, 10.25, 59.75} {
		back, err := ProbToOdd(OddToProb(o))
		if err != nil {
			t.Fatalf("round trip %v: %v", o, err)
		}
		if math.Abs(back-o) > 1e-9 {
			t.Errorf("round trip %v -> %v", o, back)
		}
	}
	if OddToProb(1) != 1 || OddToProb(0.5) != 1 {
		t.Error("odds <= 1 should clamp to probability 1")
	}
}

func TestImpliedLambda(t *testing.T) {
	if got := ImpliedLambda(0.4); math.Abs(got-0.5108256) > 1e-6 {
		t.Errorf("ImpliedLambda(0.4) = %v", got)
	}
	for _, p := range []float64{0, 1, -1, 2} {
		if got := ImpliedLambda(p); got != 0 {
			t.Errorf("ImpliedLambda(%v) = %v, want 0", p, got)
		}
	}
}

func TestApplyMargin(t *testing.T) {
	for _, o := range []float64{1.05, 1.8, 2.5, 12, 55} {
		if got := ApplyMargin(o, 0); got != o {
			t.Errorf("zero margin changed %v -> %v", o, got)
		}
	}
	if got := ApplyMargin(2.0, 5); math.Abs(got-1/(0.5*1.05)) > 1e-12 {
		t.Errorf("ApplyMargin(2,5) = %v", got)
	}
	if got := ApplyMargin(0.9, 5); got != 0.9 {
		t.Errorf("odd <= 1 should pass through, got %v", got)
	}
	if IsPrice(ApplyMargin(1.02, 5)) {
		t.Error("margin pushing p >= 1 should yield NoPrice")
	}
	if IsPrice(ApplyMargin(NoPrice, 5)) {
		t.Error("NoPrice should pass through")
	}
}

func TestFormatOdd(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{NoPrice, "N/A"},
		{0.5, "1.01"},
		{1.01, "1.01"},
		{1.04, "1.01"},
		{1.86, "1.90"},
		{9.94, "9.90"},
		{9.96, "10.00"},
		{10.1, "10.00"},
		{10.13, "10.25"},
		{23.4, "23.50"},
		{60, "60.00"},
	}
	for _, tt := range tests {
		if got := FormatOdd(tt.in); got != tt.want {
			t.Errorf("FormatOdd(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatOddIdempotent(t *testing.T) {
	for o := 1.0; o < 80; o += 0.037 {
		first := FormatOdd(o)
		if again := FormatOdd(ParseOdd(first)); again != first {
			t.Fatalf("FormatOdd not idempotent at %v: %q -> %q", o, first, again)
		}
	}
}

func TestCorrelatedProbability(t *testing.T) {
	got := CorrelatedProbability(0.3, 0.6, DefaultBoost)
	if want := 0.3 * 0.69; math.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
	// boosted side caps at 0.99
	if got := CorrelatedProbability(0.95, 0.5, 1.2); math.Abs(got-0.5*0.99) > 1e-12 {
		t.Errorf("cap not applied: %v", got)
	}
}

func TestRemoveVig3(t *testing.T) {
	h, d, a := RemoveVig3(1.8, 3.6, 4.5)
	if math.Abs(h+d+a-1) > 1e-12 {
		t.Errorf("fair probabilities sum to %v", h+d+a)
	}
	if !(h > a && a > 0) {
		t.Errorf("home should be favoured: h=%v a=%v", h, a)
	}
	if ov := Overround(1.8, 3.6, 4.5); ov <= 0 {
		t.Errorf("overround = %v, want > 0", ov)
	}
}
