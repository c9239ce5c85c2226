package match

// rule is one step of a fallback chain: the first rule whose applies
// returns true supplies the value.
type rule struct {
	name    string
	applies func() bool
	compute func() float64
}

// always marks the terminal rule of a chain.
func always() bool { return true }

// evaluate walks rules in order. Chains end in a terminal rule, so the
// zero result is only reachable for an empty chain.
func evaluate(rules []rule) (float64, string) {
	for _, r := range rules {
		if r.applies() {
			return r.compute(), r.name
		}
	}
	return 0, ""
}
