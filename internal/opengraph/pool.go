package opengraph

import (
	"errors"
	"sync"
)

// Pool manages Screenshotter instances for parallel capture. Each
// screenshotter owns a browser, so they are created lazily on first acquire.
type Pool struct {
	size    int
	factory func() Screenshotter
	all     []Screenshotter
	sem     chan Screenshotter
	mu      sync.Mutex
	created int
	closed  bool
}

// NewPool creates a pool with capacity for n screenshotters built by
// factory.
func NewPool(n int, factory func() Screenshotter) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{
		size:    n,
		factory: factory,
		all:     make([]Screenshotter, 0, n),
		sem:     make(chan Screenshotter, n),
	}
}

// Acquire gets a screenshotter, creating one if capacity remains. It blocks
// while all of them are in use and fails with ErrPoolClosed once Close ran.
func (p *Pool) Acquire() (Screenshotter, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	select {
	case s := <-p.sem:
		p.mu.Unlock()
		return s, nil
	default:
	}
	if p.created < p.size {
		p.created++
		s := p.factory()
		p.all = append(p.all, s)
		p.mu.Unlock()
		return s, nil
	}
	p.mu.Unlock()

	s, ok := <-p.sem
	if !ok || p.isClosed() {
		// Close leaves released screenshotters buffered in sem.
		return nil, ErrPoolClosed
	}
	return s, nil
}

func (p *Pool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Release returns s to the pool.
func (p *Pool) Release(s Screenshotter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- s
}

// Close closes every screenshotter the pool created.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	all := p.all
	p.mu.Unlock()

	var errs []error
	for _, s := range all {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *Pool) Size() int {
	return p.size
}
