package feebar

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/qubic/go-mempool-matrix/entities"
)

// Mapper turns blocks into columns of Height pixel colors.
type Mapper struct {
	Height   int
	Ramp     Ramp
	Resample ResamplePolicy
	Segments SegmentPolicy
}

func NewMapper(height int) Mapper {
	return Mapper{
		Height:   height,
		Ramp:     DefaultRamp,
		Resample: Interpolate,
		Segments: DefaultSegmentPolicy,
	}
}

// MempoolBar colors one pixel per resampled fee of the block's fee range.
func (m Mapper) MempoolBar(block entities.FeeBlock) ([]entities.RGB, error) {
	if len(block.FeeRange) == 0 {
		return nil, entities.ErrEmptyFeeRange
	}

	length := BarLength(block.SizeBytes, m.Height)
	fees, err := Resample(block.FeeRange, length, m.Resample)
	if err != nil {
		return nil, errors.Wrap(err, "resampling fee range")
	}

	maxFee := slices.Max(block.FeeRange)
	colors := make([]entities.RGB, len(fees))
	for i, fee := range fees {
		colors[i] = m.Ramp.Color(fee, maxFee)
	}
	return Expand(colors, length, m.Height, m.Segments), nil
}

// MinedBar fills the block's bar with the color of its median fee.
func (m Mapper) MinedBar(block entities.FeeBlock) []entities.RGB {
	length := BarLength(block.SizeBytes, m.Height)
	color := m.Ramp.MedianFeeColor(block.MedianFee)
	return Expand([]entities.RGB{color}, length, m.Height, m.Segments)
}
