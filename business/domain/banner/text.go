package banner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/qubic/go-mempool-matrix/entities"
)

const satoshisPerBitcoin = 100_000_000

const separator = "    "

// NewBlockText is the announcement scrolled when a block got mined.
func NewBlockText(block entities.MinedBlock) string {
	parts := []string{
		fmt.Sprintf("New Block %d", block.Height),
		fmt.Sprintf("Reward: %s BTC", formatFloat(float64(block.Extras.Reward)/satoshisPerBitcoin, 3)),
		fmt.Sprintf("Tx Count: %d", block.TxCount),
		fmt.Sprintf("Median Fee: ~%s sat/vB", formatFloat(block.Extras.MedianFee, 2)),
	}
	return strings.Join(parts, separator)
}

func ButtonText(button string) string {
	return fmt.Sprintf("Button %s pressed!", button)
}

func formatFloat(value float64, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	return strconv.FormatFloat(math.Round(value*scale)/scale, 'f', -1, 64)
}
