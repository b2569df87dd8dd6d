package entities

// MempoolBlock is one projected block of pending transactions as returned by
// the /api/v1/fees/mempool-blocks endpoint.
type MempoolBlock struct {
	BlockSize  int64     `json:"blockSize"`
	BlockVSize float64   `json:"blockVSize"`
	NTx        int       `json:"nTx"`
	TotalFees  int64     `json:"totalFees"`
	MedianFee  float64   `json:"medianFee"`
	FeeRange   []float64 `json:"feeRange"`
}

// MinedBlock is one entry of the /api/v1/blocks endpoint.
type MinedBlock struct {
	ID        string      `json:"id"`
	Height    int64       `json:"height"`
	Timestamp int64       `json:"timestamp"`
	Size      int64       `json:"size"`
	Weight    int64       `json:"weight"`
	TxCount   int         `json:"tx_count"`
	Extras    BlockExtras `json:"extras"`
}

type BlockExtras struct {
	Reward    int64     `json:"reward"` // satoshis
	MedianFee float64   `json:"medianFee"`
	FeeRange  []float64 `json:"feeRange,omitempty"`
	TotalFees int64     `json:"totalFees"`
}

// FeeBlock is the part of a block the bar mapper works on.
type FeeBlock struct {
	SizeBytes int64
	FeeRange  []float64
	MedianFee float64
}

func (b MempoolBlock) FeeBlock() FeeBlock {
	return FeeBlock{
		SizeBytes: b.BlockSize,
		FeeRange:  b.FeeRange,
		MedianFee: b.MedianFee,
	}
}

func (b MinedBlock) FeeBlock() FeeBlock {
	return FeeBlock{
		SizeBytes: b.Size,
		FeeRange:  b.Extras.FeeRange,
		MedianFee: b.Extras.MedianFee,
	}
}
