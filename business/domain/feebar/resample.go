package feebar

import (
	"math"
	"slices"

	"github.com/pkg/errors"
	"github.com/qubic/go-mempool-matrix/entities"
)

type ResamplePolicy string

const (
	// Interpolate samples the fee range at evenly spaced positions using linear interpolation.
	Interpolate ResamplePolicy = "interpolate"
	// Midpoint drops or merges the values around the middle of the range one at a time,
	// or inserts their average when growing. The first and last value are kept.
	Midpoint ResamplePolicy = "midpoint"
)

func ParseResamplePolicy(value string) (ResamplePolicy, error) {
	switch p := ResamplePolicy(value); p {
	case Interpolate, Midpoint:
		return p, nil
	}
	return "", errors.Errorf("unknown resample policy [%s]", value)
}

// Resample returns exactly targetLength fee values representing feeRange.
func Resample(feeRange []float64, targetLength int, policy ResamplePolicy) ([]float64, error) {
	if len(feeRange) == 0 {
		return nil, entities.ErrEmptyFeeRange
	}

	switch {
	case targetLength <= 0:
		return []float64{}, nil
	case targetLength == len(feeRange):
		return slices.Clone(feeRange), nil
	case targetLength == 1:
		return []float64{feeRange[0]}, nil
	case len(feeRange) == 1:
		out := make([]float64, targetLength)
		for i := range out {
			out[i] = feeRange[0]
		}
		return out, nil
	}

	switch policy {
	case Interpolate:
		return interpolate(feeRange, targetLength), nil
	case Midpoint:
		return resampleAroundMidpoint(feeRange, targetLength), nil
	}
	return nil, errors.Errorf("unknown resample policy [%s]", policy)
}

// interpolate expects len(values) >= 2 and n >= 2.
func interpolate(values []float64, n int) []float64 {
	last := len(values) - 1
	step := float64(last) / float64(n-1)

	out := make([]float64, n)
	for i := range out {
		pos := float64(i) * step
		lo := int(math.Floor(pos))
		if lo >= last {
			out[i] = values[last]
			continue
		}
		frac := pos - float64(lo)
		out[i] = values[lo] + (values[lo+1]-values[lo])*frac
	}
	return out
}

// resampleAroundMidpoint expects len(values) >= 2 and n >= 2.
func resampleAroundMidpoint(values []float64, n int) []float64 {
	out := slices.Clone(values)
	for len(out) > n {
		mid := len(out) / 2
		if len(out)%2 == 1 {
			// odd length: drop the middle value, the ends always stay
			out = slices.Delete(out, mid, mid+1)
			continue
		}
		avg := (out[mid-1] + out[mid]) / 2
		out = slices.Replace(out, mid-1, mid+1, avg)
	}
	for len(out) < n {
		mid := len(out) / 2
		avg := (out[mid-1] + out[mid]) / 2
		out = slices.Insert(out, mid, avg)
	}
	return out
}
