// Package poller runs a callback on a fixed interval until stopped.
package poller

import (
	"context"
	"sync"
	"time"
)

// MinInterval is the shortest interval a Poller accepts.
const MinInterval = time.Second

// Poller invokes fn once on Start and then on every tick. Stop cancels the
// context passed to fn and waits for the loop to exit, so no callback runs
// after Stop returns.
type Poller struct {
	interval time.Duration
	fn       func(context.Context)

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	doneCh  chan struct{}
}

// New creates a poller. Intervals below MinInterval are raised to it.
func New(interval time.Duration, fn func(context.Context)) *Poller {
	if interval < MinInterval {
		interval = MinInterval
	}
	return newPoller(interval, fn)
}

func newPoller(interval time.Duration, fn func(context.Context)) *Poller {
	return &Poller{
		interval: interval,
		fn:       fn,
		doneCh:   make(chan struct{}),
	}
}

// Interval reports the effective polling interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start launches the loop in a goroutine. Calling Start twice is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	go p.run(ctx)
}

// Stop requests loop termination and waits until it is done. Safe to call
// more than once, and before Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started {
		p.started = true
		close(p.doneCh)
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-p.doneCh
}

// Done is closed once the loop has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.doneCh
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.doneCh)

	p.fn(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			p.fn(ctx)
		case <-ctx.Done():
			return
		}
	}
}
