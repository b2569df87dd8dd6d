package entities

// DisplayStatus is a snapshot of the display loop.
type DisplayStatus struct {
	LatestBlockHeight   int64  `json:"latestBlockHeight"`
	MempoolBlocks       int    `json:"mempoolBlocks"`
	RenderedCycles      uint64 `json:"renderedCycles"`
	FailedCycles        uint64 `json:"failedCycles"`
	LastRenderTimestamp int64  `json:"lastRenderTimestamp"`
	LastError           string `json:"lastError,omitempty"`
}
