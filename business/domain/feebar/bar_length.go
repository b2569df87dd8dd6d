package feebar

import "math"

// MaxBlockSizeBytes is the block size that fills a whole column.
const MaxBlockSizeBytes = 2 * 1024 * 1024

// BarLength scales a block size onto maxHeight pixels, rounding up. The result is
// always in [0, maxHeight].
func BarLength(sizeBytes int64, maxHeight int) int {
	if maxHeight <= 0 || sizeBytes <= 0 {
		return 0
	}
	if sizeBytes >= MaxBlockSizeBytes {
		return maxHeight
	}
	length := int(math.Ceil(float64(sizeBytes) / MaxBlockSizeBytes * float64(maxHeight)))
	return min(length, maxHeight)
}
