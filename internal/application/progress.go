package application

import (
	"sync"
	"time"
)

const (
	progressStep    = 15
	progressCeiling = 95
)

// ProgressEstimator synthesizes a percentage for a request that has no
// incremental feedback channel. Ticks climb toward the ceiling and hold
// there; Complete snaps to 100. The value is cosmetic only and never
// gates the outcome of an operation.
type ProgressEstimator struct {
	percent int
	step    int
	ceiling int
}

func NewProgressEstimator() ProgressEstimator {
	return ProgressEstimator{step: progressStep, ceiling: progressCeiling}
}

func (p *ProgressEstimator) Tick() int {
	p.percent += p.step
	if p.percent > p.ceiling {
		p.percent = p.ceiling
	}

	return p.percent
}

func (p *ProgressEstimator) Complete() int {
	p.percent = 100

	return p.percent
}

func (p *ProgressEstimator) Percent() int {
	return p.percent
}

// progressTicker drives an estimator from a time.Ticker on its own
// goroutine. stop closes the done channel and waits for the goroutine to
// exit, so no callback fires after stop returns; the goroutine's final
// callback is always Complete (100).
type progressTicker struct {
	stopOnce sync.Once
	done     chan struct{}
	finished chan struct{}
}

func (s *Service) startProgress(onProgress func(percent int)) *progressTicker {
	t := &progressTicker{
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}

	if onProgress == nil {
		close(t.finished)
		return t
	}

	interval := s.progressInterval

	go func() {
		defer close(t.finished)

		estimator := NewProgressEstimator()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.done:
				onProgress(estimator.Complete())
				return
			case <-ticker.C:
				onProgress(estimator.Tick())
			}
		}
	}()

	return t
}

func (t *progressTicker) stop() {
	t.stopOnce.Do(func() {
		close(t.done)
	})
	<-t.finished
}
