package feebar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qubic/go-mempool-matrix/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapper_MempoolBar(t *testing.T) {
	mapper := NewMapper(7)
	block := entities.FeeBlock{
		SizeBytes: 1_400_000, // five of seven rows
		FeeRange:  []float64{1, 5, 20, 61, 100},
	}

	column, err := mapper.MempoolBar(block)
	require.NoError(t, err)

	expected := []entities.RGB{
		entities.Off,
		entities.Off,
		{R: 255},         // 100, block maximum
		{R: 255, B: 249}, // 61
		{R: 255, G: 255}, // 20
		{G: 128, B: 128}, // 5
		{G: 26, B: 230},  // 1
	}
	if diff := cmp.Diff(expected, column); diff != "" {
		t.Fatalf("unexpected column (-want +got):\n%s", diff)
	}
}

func TestMapper_MempoolBar_singleFeeBroadcast(t *testing.T) {
	mapper := NewMapper(4)
	column, err := mapper.MempoolBar(entities.FeeBlock{SizeBytes: MaxBlockSizeBytes, FeeRange: []float64{2}})
	require.NoError(t, err)

	expected := entities.RGB{G: 51, B: 204}
	assert.Equal(t, []entities.RGB{expected, expected, expected, expected}, column)
}

func TestMapper_MempoolBar_emptyBlock(t *testing.T) {
	mapper := NewMapper(7)
	column, err := mapper.MempoolBar(entities.FeeBlock{SizeBytes: 0, FeeRange: []float64{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, make([]entities.RGB, 7), column)
}

func TestMapper_MempoolBar_emptyFeeRange(t *testing.T) {
	mapper := NewMapper(7)
	_, err := mapper.MempoolBar(entities.FeeBlock{SizeBytes: 1000})
	require.ErrorIs(t, err, entities.ErrEmptyFeeRange)
}

func TestMapper_MempoolBar_longFeeRange(t *testing.T) {
	mapper := NewMapper(7)
	mapper.Resample = Midpoint
	feeRange := []float64{1, 2, 3, 4, 6, 8, 10, 12, 14, 18, 22, 30, 45, 80, 120}

	column, err := mapper.MempoolBar(entities.FeeBlock{SizeBytes: MaxBlockSizeBytes, FeeRange: feeRange})
	require.NoError(t, err)
	require.Len(t, column, 7)
	for _, c := range column {
		assert.NotEqual(t, entities.Off, c)
	}
}

func TestMapper_MinedBar(t *testing.T) {
	mapper := NewMapper(7)
	column := mapper.MinedBar(entities.FeeBlock{SizeBytes: 1024 * 1024, MedianFee: 30})

	purple := entities.RGB{R: 64, B: 180}
	expected := []entities.RGB{
		entities.Off, entities.Off, entities.Off,
		purple, purple, purple, purple,
	}
	assert.Equal(t, expected, column)
}
