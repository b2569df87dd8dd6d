package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DisplayMetrics struct {
	latestBlockGauge     prometheus.Gauge
	mempoolBlocksGauge   prometheus.Gauge
	lastRenderGauge      prometheus.Gauge
	renderedCyclesCount  prometheus.Counter
	failedCyclesCount    prometheus.Counter
	newBlocksCount       prometheus.Counter
	manualRefreshesCount prometheus.Counter
}

func NewDisplayMetrics(namespace string) *DisplayMetrics {
	m := DisplayMetrics{
		// source state
		latestBlockGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_latest_block_height", namespace),
			Help: "The height of the latest mined block seen",
		}),
		mempoolBlocksGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_mempool_blocks", namespace),
			Help: "The number of projected mempool blocks in the last update",
		}),
		// rendering
		lastRenderGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_last_render_timestamp_seconds", namespace),
			Help: "Unix time of the last successful render",
		}),
		renderedCyclesCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_rendered_cycle_count", namespace),
			Help: "The total number of successful render cycles",
		}),
		failedCyclesCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_failed_cycle_count", namespace),
			Help: "The total number of aborted render cycles",
		}),
		newBlocksCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_new_block_count", namespace),
			Help: "The total number of announced new blocks",
		}),
		manualRefreshesCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_manual_refresh_count", namespace),
			Help: "The total number of refreshes triggered by a button",
		}),
	}
	return &m
}

func (metrics *DisplayMetrics) SetLatestBlock(height int64) {
	metrics.latestBlockGauge.Set(float64(height))
}

func (metrics *DisplayMetrics) SetMempoolBlocks(count int) {
	metrics.mempoolBlocksGauge.Set(float64(count))
}

func (metrics *DisplayMetrics) IncRenderedCycles(at time.Time) {
	metrics.renderedCyclesCount.Inc()
	metrics.lastRenderGauge.Set(float64(at.Unix()))
}

func (metrics *DisplayMetrics) IncFailedCycles() {
	metrics.failedCyclesCount.Inc()
}

func (metrics *DisplayMetrics) IncNewBlocks() {
	metrics.newBlocksCount.Inc()
}

func (metrics *DisplayMetrics) IncManualRefreshes() {
	metrics.manualRefreshesCount.Inc()
}
