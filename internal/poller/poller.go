package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"ainewsagg/internal/aggregator"
	"ainewsagg/internal/models"
)

// Poller runs aggregation in the background on a fixed interval. A
// manual trigger overlapping a scheduled run is harmless: the store's
// source ID uniqueness is the only concurrency guard the pipeline needs.
type Poller struct {
	aggregator  *aggregator.Aggregator
	interval    time.Duration
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.RWMutex
	lastRun     time.Time
	lastSummary models.Summary
	isRunning   bool
}

func New(agg *aggregator.Aggregator, interval time.Duration) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		aggregator: agg,
		interval:   interval,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (p *Poller) Start() {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return
	}
	p.isRunning = true
	p.mu.Unlock()

	log.Printf("Starting aggregation poller with interval: %v", p.interval)

	p.wg.Add(1)
	go p.pollLoop()
}

func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return
	}
	p.isRunning = false
	p.mu.Unlock()

	log.Println("Stopping aggregation poller...")
	p.cancel()
	p.wg.Wait()
	log.Println("Aggregation poller stopped")
}

func (p *Poller) pollLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Run immediately on start
	p.runOnce()

	for {
		select {
		case <-ticker.C:
			p.runOnce()
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Poller) runOnce() {
	summary := p.aggregator.Run(p.ctx)

	p.mu.Lock()
	p.lastRun = time.Now()
	p.lastSummary = summary
	p.mu.Unlock()
}

// ForceRun triggers an aggregation run outside the schedule and returns
// its summary.
func (p *Poller) ForceRun(ctx context.Context) models.Summary {
	summary := p.aggregator.Run(ctx)

	p.mu.Lock()
	p.lastRun = time.Now()
	p.lastSummary = summary
	p.mu.Unlock()

	return summary
}

func (p *Poller) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isRunning
}

// LastRun reports when the poller last completed a run and what it
// tallied. The zero time means no run has completed yet.
func (p *Poller) LastRun() (time.Time, models.Summary) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastRun, p.lastSummary
}
