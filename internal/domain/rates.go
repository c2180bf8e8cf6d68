package domain

import (
	"fmt"
	"sort"
)

// RateCurve holds annualized yields keyed by maturity in months,
// as sampled on a single day.
type RateCurve struct {
	Rates map[int]float64
}

func (rc RateCurve) GetRate(months int) (float64, error) {
	v, ok := rc.Rates[months]
	if ok {
		return v, nil
	}

	keys := []int{}
	for k := range rc.Rates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})

	if len(keys) == 0 {
		return 0, fmt.Errorf("no rates in given curve")
	}

	// clamp outside the sampled range, interpolate inside it
	if months < keys[0] {
		return rc.Rates[keys[0]], nil
	}
	if months > keys[len(keys)-1] {
		return rc.Rates[keys[len(keys)-1]], nil
	}

	lower := keys[0]
	upper := keys[len(keys)-1]
	for _, k := range keys {
		if k < months && k > lower {
			lower = k
		}
		if k > months && k < upper {
			upper = k
		}
	}

	fraction := float64(months-lower) / float64(upper-lower)
	return rc.Rates[lower] + fraction*(rc.Rates[upper]-rc.Rates[lower]), nil
}
