package feebar

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/qubic/go-mempool-matrix/entities"
)

type SegmentOrder string

const (
	Ascending  SegmentOrder = "ascending"
	Descending SegmentOrder = "descending"
)

type PadSide string

const (
	Leading  PadSide = "leading"
	Trailing PadSide = "trailing"
)

// SegmentPolicy decides how a bar is laid into a column. Index 0 of a column is
// the top row, so the default (descending, leading) keeps low fees at the bottom
// and the unlit pixels at the top.
type SegmentPolicy struct {
	Order SegmentOrder
	Pad   PadSide
}

var DefaultSegmentPolicy = SegmentPolicy{Order: Descending, Pad: Leading}

func ParseSegmentPolicy(order, pad string) (SegmentPolicy, error) {
	p := SegmentPolicy{Order: SegmentOrder(order), Pad: PadSide(pad)}
	if p.Order != Ascending && p.Order != Descending {
		return SegmentPolicy{}, errors.Errorf("unknown segment order [%s]", order)
	}
	if p.Pad != Leading && p.Pad != Trailing {
		return SegmentPolicy{}, errors.Errorf("unknown pad side [%s]", pad)
	}
	return p, nil
}

// Expand spreads barLength pixels over the given colors and pads the bar with unlit
// pixels up to height. Every color gets barLength/len(colors) pixels, the first
// barLength%len(colors) colors get one more.
func Expand(colors []entities.RGB, barLength, height int, policy SegmentPolicy) []entities.RGB {
	if height <= 0 {
		return []entities.RGB{}
	}
	barLength = min(max(barLength, 0), height)
	if len(colors) == 0 {
		barLength = 0
	}

	bar := make([]entities.RGB, 0, height)
	if barLength > 0 {
		base := barLength / len(colors)
		extra := barLength % len(colors)
		for i, c := range colors {
			n := base
			if i < extra {
				n++
			}
			for range n {
				bar = append(bar, c)
			}
		}
	}

	if policy.Order == Descending {
		slices.Reverse(bar)
	}

	padding := make([]entities.RGB, height-len(bar))
	if policy.Pad == Trailing {
		return append(bar, padding...)
	}
	return append(padding, bar...)
}
