package renderer

import "sync"

// ProgressFunc receives the number of finished pixels and the total
type ProgressFunc func(done, total int)

// Progress is an advisory pixel counter shared by all workers.
// It never affects the rendered result.
type Progress struct {
	mu       sync.Mutex
	done     int
	total    int
	step     int // Callback granularity in pixels
	notified int
	callback ProgressFunc
}

// NewProgress creates a counter that reports roughly every step pixels
func NewProgress(total, step int, callback ProgressFunc) *Progress {
	if step <= 0 {
		step = 1
	}
	return &Progress{total: total, step: step, callback: callback}
}

// Add records n finished pixels
func (p *Progress) Add(n int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done += n
	if p.callback != nil && (p.done-p.notified >= p.step || p.done == p.total) {
		p.notified = p.done
		p.callback(p.done, p.total)
	}
}

// Done returns the number of finished pixels
func (p *Progress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Fraction returns the finished share in [0,1]
func (p *Progress) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total == 0 {
		return 1
	}
	return float64(p.done) / float64(p.total)
}
