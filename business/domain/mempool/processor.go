// Package mempool runs the display loop: it polls the mempool node, renders the fee
// bars and announces newly mined blocks.
package mempool

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/qubic/go-mempool-matrix/business/domain/banner"
	"github.com/qubic/go-mempool-matrix/business/domain/feebar"
	"github.com/qubic/go-mempool-matrix/entities"
	"github.com/qubic/go-mempool-matrix/external/matrix"
	"github.com/qubic/go-mempool-matrix/infrastructure/metrics"
	"go.uber.org/zap"
)

type Fetcher interface {
	GetBlocks(ctx context.Context) ([]entities.MinedBlock, error)
	GetMempoolBlocks(ctx context.Context) ([]entities.MempoolBlock, error)
}

type Display interface {
	SetPixel(x, y int, c entities.RGB)
	Show() error
	Shape() (width, height int)
	Clear()
	Events() <-chan matrix.Event
}

type Banner interface {
	Scroll(ctx context.Context, text string) error
}

type Processor struct {
	fetcher  Fetcher
	display  Display
	banner   Banner
	mapper   feebar.Mapper
	layout   Layout
	interval time.Duration
	metrics  *metrics.DisplayMetrics
	logger   *zap.SugaredLogger

	lastHeight int64 // only touched by the loop

	statusMutex sync.Mutex
	status      entities.DisplayStatus
}

func NewProcessor(fetcher Fetcher, display Display, scroller Banner, mapper feebar.Mapper, layout Layout,
	interval time.Duration, m *metrics.DisplayMetrics, logger *zap.SugaredLogger) *Processor {
	return &Processor{
		fetcher:  fetcher,
		display:  display,
		banner:   scroller,
		mapper:   mapper,
		layout:   layout,
		interval: interval,
		metrics:  m,
		logger:   logger,
	}
}

// Start renders a cycle every interval until ctx is done or the user quits. A button
// press scrolls a notice and refreshes immediately.
func (p *Processor) Start(ctx context.Context) error {
	p.logger.Infow("Starting display loop.", "interval", p.interval)
	for {
		if ctx.Err() != nil {
			return nil
		}
		p.cycle(ctx)

		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-p.display.Events():
			if !ok || event.Quit {
				p.logger.Infow("Quit requested.")
				return nil
			}
			p.pressed(ctx, event.Button)
		case <-time.After(p.interval):
		}
	}
}

func (p *Processor) GetStatus() entities.DisplayStatus {
	p.statusMutex.Lock()
	defer p.statusMutex.Unlock()
	return p.status
}

func (p *Processor) cycle(ctx context.Context) {
	err := p.runCycle(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return // shutting down
		}
		p.metrics.IncFailedCycles()
		p.updateStatus(func(s *entities.DisplayStatus) {
			s.FailedCycles++
			s.LastError = err.Error()
		})
		p.logger.Errorw("Error running display cycle.", "error", err)
		return
	}

	now := time.Now()
	p.metrics.IncRenderedCycles(now)
	p.updateStatus(func(s *entities.DisplayStatus) {
		s.RenderedCycles++
		s.LastRenderTimestamp = now.Unix()
		s.LastError = ""
	})
}

func (p *Processor) runCycle(ctx context.Context) error {
	blocks, err := p.fetcher.GetBlocks(ctx)
	if err != nil {
		return errors.Wrap(err, "getting blocks")
	}
	if len(blocks) == 0 {
		return entities.ErrNoBlocks
	}

	latest := blocks[0]
	if latest.Height > p.lastHeight {
		announce := p.lastHeight != 0
		p.lastHeight = latest.Height
		p.metrics.SetLatestBlock(latest.Height)
		p.updateStatus(func(s *entities.DisplayStatus) { s.LatestBlockHeight = latest.Height })

		if announce {
			p.logger.Infow("New block found.", "height", latest.Height, "txCount", latest.TxCount)
			p.metrics.IncNewBlocks()
			err = p.banner.Scroll(ctx, banner.NewBlockText(latest))
			if err != nil {
				return errors.Wrapf(err, "announcing block [%d]", latest.Height)
			}
		}
	}

	mempoolBlocks, err := p.fetcher.GetMempoolBlocks(ctx)
	if err != nil {
		return errors.Wrap(err, "getting mempool blocks")
	}
	p.metrics.SetMempoolBlocks(len(mempoolBlocks))
	p.updateStatus(func(s *entities.DisplayStatus) { s.MempoolBlocks = len(mempoolBlocks) })

	return p.render(blocks, mempoolBlocks)
}

// render draws a complete frame. Blocks that do not fit the layout are dropped.
func (p *Processor) render(blocks []entities.MinedBlock, mempoolBlocks []entities.MempoolBlock) error {
	width, height := p.display.Shape()
	mapper := p.mapper
	mapper.Height = height

	p.display.Clear()
	for i, block := range mempoolBlocks {
		x, ok := p.layout.MempoolColumn(i, width)
		if !ok {
			break
		}
		column, err := mapper.MempoolBar(block.FeeBlock())
		if err != nil {
			p.logger.Warnw("Leaving mempool column empty.", "block", i, "error", err)
			continue
		}
		p.drawColumn(x, column)
	}
	for i, block := range blocks {
		x, ok := p.layout.MinedColumn(i, width)
		if !ok {
			break
		}
		p.drawColumn(x, mapper.MinedBar(block.FeeBlock()))
	}

	return errors.Wrap(p.display.Show(), "showing frame")
}

func (p *Processor) drawColumn(x int, column []entities.RGB) {
	for y, c := range column {
		p.display.SetPixel(x, y, c)
	}
}

func (p *Processor) pressed(ctx context.Context, button matrix.Button) {
	p.logger.Infow("Button pressed.", "button", button)
	p.metrics.IncManualRefreshes()
	err := p.banner.Scroll(ctx, banner.ButtonText(string(button)))
	if err != nil && ctx.Err() == nil {
		p.logger.Errorw("Error scrolling button notice.", "button", button, "error", err)
	}
}

func (p *Processor) updateStatus(update func(s *entities.DisplayStatus)) {
	p.statusMutex.Lock()
	defer p.statusMutex.Unlock()
	update(&p.status)
}
