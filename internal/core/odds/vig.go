package odds

// RemoveVig3 converts three-way decimal odds to fair probabilities by
// normalizing their implied probabilities to sum to one.
func RemoveVig3(a, b, c float64) (float64, float64, float64) {
	rawA := 1.0 / a
	rawB := 1.0 / b
	rawC := 1.0 / c
	total := rawA + rawB + rawC
	return rawA / total, rawB / total, rawC / total
}

// Overround returns the summed implied probability of a set of prices minus
// one. Zero or negative prices are skipped.
func Overround(prices ...float64) float64 {
	var sum float64
	for _, p := range prices {
		if p > 0 {
			sum += 1 / p
		}
	}
	if sum == 0 {
		return 0
	}
	return sum - 1
}
