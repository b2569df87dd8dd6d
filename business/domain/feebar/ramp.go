package feebar

import (
	"math"

	"github.com/pkg/errors"
	"github.com/qubic/go-mempool-matrix/entities"
)

// Ramp holds the fee breakpoints (sat/vB) of the piecewise linear color ramp
// blue -> green -> yellow -> red -> fuchsia.
type Ramp struct {
	Green  float64
	Yellow float64
	Red    float64
}

var DefaultRamp = Ramp{Green: 10, Yellow: 20, Red: 60}

func (r Ramp) Validate() error {
	if r.Green <= 0 || r.Yellow <= r.Green || r.Red <= r.Yellow {
		return errors.Errorf("invalid ramp breakpoints [%v, %v, %v]", r.Green, r.Yellow, r.Red)
	}
	return nil
}

// Color maps a fee onto the ramp. maxFee is the maximum of the block's fee range
// and bounds the red to fuchsia band.
func (r Ramp) Color(fee, maxFee float64) entities.RGB {
	fee = max(fee, 0)
	switch {
	case fee <= r.Green:
		return rgb(0, 255*fee/r.Green, 255*(r.Green-fee)/r.Green)
	case fee <= r.Yellow:
		return rgb(255*(fee-r.Green)/(r.Yellow-r.Green), 255, 0)
	case fee <= r.Red:
		return rgb(255, 255*(r.Red-fee)/(r.Red-r.Green), 0)
	case maxFee <= r.Red:
		return rgb(255, 0, 0)
	default:
		return rgb(255, 0, 255*(maxFee-fee)/(maxFee-r.Red))
	}
}

// MedianFeeColor is the blue to red ramp used for mined blocks.
func (r Ramp) MedianFeeColor(fee float64) entities.RGB {
	fee = max(fee, 0)
	red := 255 * min(math.Pow(fee/r.Red, 2), 1)
	blue := 255 * math.Sqrt(max((r.Red-fee)/r.Red, 0))
	return rgb(red, 0, blue)
}

func rgb(r, g, b float64) entities.RGB {
	return entities.RGB{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(min(max(math.Round(v), 0), 255))
}
