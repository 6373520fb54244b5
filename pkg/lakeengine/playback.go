package lakeengine

import (
	"sync"
	"time"
)

// Playback owns the time-scrub animation state: an index into the ordered
// TimePoints sequence and the ticker that advances it. The ticker handle is
// acquired by Start and must be released by Stop; the engine stops playback
// on shutdown so no timer outlives its owner.
//
// Policy: playback stops at the last index rather than looping. Reaching the
// end halts the ticker and leaves the index in place.
type Playback struct {
	mu        sync.Mutex
	index     int
	lastIndex int
	onAdvance func(index int)

	ticker *time.Ticker
	done   chan struct{}
}

// NewPlayback creates playback state over lastIndex+1 time points. onAdvance
// fires on every automatic step (never on manual scrubs) and may be nil.
func NewPlayback(lastIndex int, onAdvance func(index int)) *Playback {
	if lastIndex < 0 {
		lastIndex = 0
	}
	return &Playback{lastIndex: lastIndex, onAdvance: onAdvance}
}

// Index returns the current time index.
func (p *Playback) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Playing reports whether the auto-advance ticker is running.
func (p *Playback) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticker != nil
}

// SetLastIndex rebounds the sequence after a data reload, clamping the
// current index into range.
func (p *Playback) SetLastIndex(lastIndex int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if lastIndex < 0 {
		lastIndex = 0
	}
	p.lastIndex = lastIndex
	if p.index > lastIndex {
		p.index = lastIndex
	}
}

// SetIndex scrubs to an explicit index. Manual scrubbing always cancels
// active playback.
func (p *Playback) SetIndex(i int) {
	p.mu.Lock()
	p.stopLocked()
	if i < 0 {
		i = 0
	}
	if i > p.lastIndex {
		i = p.lastIndex
	}
	p.index = i
	p.mu.Unlock()
}

// Start begins ticker-driven auto-advance. Starting while already playing
// restarts the ticker at the new interval.
func (p *Playback) Start(interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.ticker = time.NewTicker(interval)
	p.done = make(chan struct{})
	go p.run(p.ticker, p.done)
}

// Stop cancels auto-advance. It is idempotent and safe to call from any
// goroutine.
func (p *Playback) Stop() {
	p.mu.Lock()
	p.stopLocked()
	p.mu.Unlock()
}

func (p *Playback) stopLocked() {
	if p.ticker == nil {
		return
	}
	p.ticker.Stop()
	close(p.done)
	p.ticker = nil
	p.done = nil
}

func (p *Playback) run(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick advances one step, halting at the end of the sequence. A tick that
// finds the index already at the last position stops playback and leaves the
// index unchanged.
func (p *Playback) tick() {
	p.mu.Lock()
	if p.ticker == nil {
		p.mu.Unlock()
		return
	}
	if p.index >= p.lastIndex {
		p.stopLocked()
		p.mu.Unlock()
		return
	}
	p.index++
	idx := p.index
	cb := p.onAdvance
	p.mu.Unlock()

	if cb != nil {
		cb(idx)
	}
}
