package feebar

import (
	"testing"

	"github.com/qubic/go-mempool-matrix/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var policies = []ResamplePolicy{Interpolate, Midpoint}

func TestResample_identity(t *testing.T) {
	feeRange := []float64{1, 5, 20, 61, 100}
	for _, policy := range policies {
		resampled, err := Resample(feeRange, len(feeRange), policy)
		require.NoError(t, err)
		assert.Equal(t, feeRange, resampled)
	}
}

func TestResample_doesNotAlterInput(t *testing.T) {
	feeRange := []float64{1, 2, 3, 4, 5, 6}
	for _, policy := range policies {
		_, err := Resample(feeRange, 3, policy)
		require.NoError(t, err)
		_, err = Resample(feeRange, 9, policy)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, feeRange)
	}
}

func TestResample_outputLength(t *testing.T) {
	for _, policy := range policies {
		for n := 1; n <= 20; n++ {
			feeRange := make([]float64, n)
			for i := range feeRange {
				feeRange[i] = float64(i * i)
			}
			for target := 1; target <= 20; target++ {
				resampled, err := Resample(feeRange, target, policy)
				require.NoError(t, err)
				require.Len(t, resampled, target, "policy [%s] n [%d] target [%d]", policy, n, target)
			}
		}
	}
}

func TestResample_keepsRangeOrdered(t *testing.T) {
	feeRange := []float64{1, 1.5, 2, 4, 8, 12, 30, 31, 200}
	for _, policy := range policies {
		for target := 2; target <= 17; target++ {
			resampled, err := Resample(feeRange, target, policy)
			require.NoError(t, err)
			for i := 1; i < len(resampled); i++ {
				require.LessOrEqual(t, resampled[i-1], resampled[i])
			}
			assert.Equal(t, feeRange[0], resampled[0])
		}
	}
}

func TestResample_midpointKeepsEnds(t *testing.T) {
	feeRange := []float64{1, 1.5, 2, 4, 8, 12, 30, 31, 200}
	for target := 2; target < len(feeRange); target++ {
		resampled, err := Resample(feeRange, target, Midpoint)
		require.NoError(t, err)
		assert.Equal(t, 1.0, resampled[0], "target [%d]", target)
		assert.Equal(t, 200.0, resampled[len(resampled)-1], "target [%d]", target)
	}

	resampled, err := Resample([]float64{1, 2, 3}, 2, Midpoint)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, resampled)
}

func TestResample_broadcastSingleFee(t *testing.T) {
	for _, policy := range policies {
		resampled, err := Resample([]float64{2}, 4, policy)
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 2, 2, 2}, resampled)
	}
}

func TestResample_smallTargets(t *testing.T) {
	resampled, err := Resample([]float64{3, 4, 5}, 1, Interpolate)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, resampled)

	resampled, err = Resample([]float64{3, 4, 5}, 0, Interpolate)
	require.NoError(t, err)
	assert.Empty(t, resampled)

	resampled, err = Resample([]float64{3, 4, 5}, -2, Midpoint)
	require.NoError(t, err)
	assert.Empty(t, resampled)
}

func TestResample_emptyFeeRange(t *testing.T) {
	_, err := Resample(nil, 3, Interpolate)
	require.ErrorIs(t, err, entities.ErrEmptyFeeRange)
}

func TestResample_interpolate(t *testing.T) {
	tests := []struct {
		name     string
		feeRange []float64
		target   int
		expected []float64
	}{
		{name: "upsample pair", feeRange: []float64{1, 3}, target: 3, expected: []float64{1, 2, 3}},
		{name: "upsample triple", feeRange: []float64{0, 10, 20}, target: 5, expected: []float64{0, 5, 10, 15, 20}},
		{name: "downsample", feeRange: []float64{0, 1, 2, 3, 4}, target: 3, expected: []float64{0, 2, 4}},
		{name: "downsample to ends", feeRange: []float64{1, 7, 9, 40}, target: 2, expected: []float64{1, 40}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resampled, err := Resample(tc.feeRange, tc.target, Interpolate)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tc.expected, resampled, 1e-9)
		})
	}
}

func TestResample_midpoint(t *testing.T) {
	tests := []struct {
		name     string
		feeRange []float64
		target   int
		expected []float64
	}{
		{name: "merge middle pair", feeRange: []float64{1, 2, 3, 4}, target: 3, expected: []float64{1, 2.5, 4}},
		{name: "drop middle value", feeRange: []float64{1, 2, 6, 7, 9}, target: 4, expected: []float64{1, 2, 7, 9}},
		{name: "drop then merge", feeRange: []float64{1, 2, 6, 7, 9}, target: 3, expected: []float64{1, 4.5, 9}},
		{name: "insert middle average", feeRange: []float64{1, 3}, target: 3, expected: []float64{1, 2, 3}},
		{name: "insert twice", feeRange: []float64{1, 3}, target: 4, expected: []float64{1, 1.5, 2, 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resampled, err := Resample(tc.feeRange, tc.target, Midpoint)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tc.expected, resampled, 1e-9)
		})
	}
}

func TestResample_unknownPolicy(t *testing.T) {
	_, err := Resample([]float64{1, 2}, 3, ResamplePolicy("cubic"))
	require.Error(t, err)
}

func TestParseResamplePolicy(t *testing.T) {
	policy, err := ParseResamplePolicy("midpoint")
	require.NoError(t, err)
	assert.Equal(t, Midpoint, policy)

	_, err = ParseResamplePolicy("nearest")
	require.Error(t, err)
}
