package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// Pool size bounds used by ResolvePoolSize.
const (
	MinPoolSize = 1
	MaxPoolSize = 4
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("converter pool is closed")

// FileConverter converts one file and reports the outcome.
type FileConverter interface {
	ConvertFile(ctx context.Context, source, destination string) Result
}

// Compile-time interface implementation check.
var _ FileConverter = (*Converter)(nil)

// Pool hands out converters to batch workers.
type Pool interface {
	Acquire() (FileConverter, error)
	Release(FileConverter)
	Size() int
}

// ConverterPool manages Converter instances for parallel processing.
// Each converter owns its own browser process, so renders run in separate
// OS processes. Converters are created lazily on first acquire.
type ConverterPool struct {
	size       int
	opts       []Option
	converters []*Converter
	sem        chan FileConverter
	mu         sync.Mutex
	created    int
	closed     bool

	newConverter func(opts ...Option) (*Converter, error)
}

// Compile-time check that ConverterPool implements Pool.
var _ Pool = (*ConverterPool)(nil)

// NewConverterPool creates a pool with capacity for n converters built with
// opts. Values below MinPoolSize are raised to it.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	return &ConverterPool{
		size:         n,
		opts:         opts,
		converters:   make([]*Converter, 0, n),
		sem:          make(chan FileConverter, n),
		newConverter: NewConverter,
	}
}

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use.
func (p *ConverterPool) Acquire() (FileConverter, error) {
	select {
	case c, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return c, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Browser startup happens outside the lock
		c, err := p.newConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, fmt.Errorf("creating converter: %w", err)
		}

		p.mu.Lock()
		p.converters = append(p.converters, c)
		p.mu.Unlock()
		return c, nil
	}
	p.mu.Unlock()

	c, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return c, nil
}

// Release returns a converter to the pool.
func (p *ConverterPool) Release(c FileConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- c
	}
}

// Close releases every browser started by the pool.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	converters := p.converters
	p.mu.Unlock()

	var errs []error
	for _, c := range converters {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the worker count.
// An explicit positive value wins; otherwise GOMAXPROCS (adjusted by
// automaxprocs in containers) capped at MaxPoolSize.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
