package tracker

import "math/rand"

// pickFromSorted picks from a preference-ordered list with geometric
// weights: the first item is twice as likely as the second, the second
// twice as likely as the third, and so on. Strong bias toward the
// recommendation while still letting other options through.
func pickFromSorted[T any](rng *rand.Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	if len(items) == 1 {
		return items[0], true
	}

	total := 0.0
	for i := range items {
		total += float64(uint64(1) << (len(items) - 1 - i))
	}

	r := rng.Float64() * total
	acc := 0.0
	for i, item := range items {
		acc += float64(uint64(1) << (len(items) - 1 - i))
		if r < acc {
			return item, true
		}
	}
	return items[len(items)-1], true
}
