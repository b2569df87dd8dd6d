package mempool

import (
	"github.com/pkg/errors"
)

type ColumnOrder string

const (
	// CenterOut puts the next mempool block and the newest mined block next to the gap.
	CenterOut ColumnOrder = "center-out"
	// EdgeIn puts them on the outer edges of the display.
	EdgeIn ColumnOrder = "edge-in"
)

func ParseColumnOrder(value string) (ColumnOrder, error) {
	switch order := ColumnOrder(value); order {
	case CenterOut, EdgeIn:
		return order, nil
	default:
		return "", errors.Errorf("unknown column order [%s]", value)
	}
}

// Layout splits the display into the mempool area on the left, a gap and the mined
// blocks area on the right.
type Layout struct {
	MempoolColumns int
	Gap            int
	Order          ColumnOrder
}

var DefaultLayout = Layout{MempoolColumns: 8, Gap: 1, Order: CenterOut}

func (l Layout) Validate() error {
	if l.MempoolColumns < 0 || l.Gap < 0 {
		return errors.Errorf("invalid layout: mempool columns [%d], gap [%d]", l.MempoolColumns, l.Gap)
	}
	_, err := ParseColumnOrder(string(l.Order))
	return err
}

// MempoolColumn returns the x coordinate of the i-th mempool block. ok is false if the
// block does not fit.
func (l Layout) MempoolColumn(i, width int) (x int, ok bool) {
	columns := min(l.MempoolColumns, width)
	if i < 0 || i >= columns {
		return 0, false
	}
	if l.Order == EdgeIn {
		return i, true
	}
	return columns - 1 - i, true
}

// MinedColumn returns the x coordinate of the i-th mined block, newest first.
func (l Layout) MinedColumn(i, width int) (x int, ok bool) {
	start := l.MempoolColumns + l.Gap
	if i < 0 || i >= width-start {
		return 0, false
	}
	if l.Order == EdgeIn {
		return width - 1 - i, true
	}
	return start + i, true
}
