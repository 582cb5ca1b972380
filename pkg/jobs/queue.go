package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrQueueFull is returned by TryEnqueue when the buffer has no room.
var ErrQueueFull = errors.New("queue full")

// Handler processes one item.
type Handler[T any] func(context.Context, T) error

// QueueConfig configures worker pool behaviour. DrainTimeout bounds how long
// Stop keeps working through buffered items.
type QueueConfig struct {
	Workers      int
	BufferSize   int
	MaxRetries   int
	RetryDelay   time.Duration
	DrainTimeout time.Duration
	Logger       *zap.Logger
}

type envelope[T any] struct {
	item    T
	attempt int
}

// Queue is an in-memory worker pool. Failed items are retried after RetryDelay
// up to MaxRetries times; items still buffered at Stop are drained before exit.
type Queue[T any] struct {
	name    string
	handler Handler[T]

	workers      int
	maxRetries   int
	retryDelay   time.Duration
	drainTimeout time.Duration
	logger       *zap.Logger

	items   chan envelope[T]
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	retries sync.WaitGroup
	mu      sync.RWMutex
	started bool
	stopped bool
}

func NewQueue[T any](name string, handler Handler[T], cfg QueueConfig) *Queue[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 64
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue[T]{
		name:         name,
		handler:      handler,
		workers:      cfg.Workers,
		maxRetries:   cfg.MaxRetries,
		retryDelay:   cfg.RetryDelay,
		drainTimeout: cfg.DrainTimeout,
		logger:       cfg.Logger,
		items:        make(chan envelope[T], cfg.BufferSize),
	}
}

// Start launches the workers. Calls after the first are no-ops.
func (q *Queue[T]) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Info("queue started", zap.String("queue", q.name), zap.Int("workers", q.workers))
}

// Stop refuses new items, drains the buffer within DrainTimeout and waits for the workers.
func (q *Queue[T]) Stop() {
	q.mu.Lock()
	if !q.started || q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	q.mu.Unlock()

	q.cancel()
	q.wg.Wait()
	q.retries.Wait()

	deadline, cancel := context.WithTimeout(context.Background(), q.drainTimeout)
	defer cancel()
	dropped := 0
drain:
	for {
		select {
		case env := <-q.items:
			if deadline.Err() != nil {
				dropped++
				continue
			}
			if err := q.handler(deadline, env.item); err != nil {
				q.logger.Warn("queue drain failed", zap.String("queue", q.name), zap.Error(err))
			}
		default:
			break drain
		}
	}
	if dropped > 0 {
		q.logger.Warn("queue dropped items at shutdown", zap.String("queue", q.name), zap.Int("dropped", dropped))
	}
	q.logger.Info("queue stopped", zap.String("queue", q.name))
}

// Enqueue blocks until item is buffered or ctx ends.
func (q *Queue[T]) Enqueue(ctx context.Context, item T) error {
	if err := q.accepting(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.items <- envelope[T]{item: item}:
		return nil
	}
}

// TryEnqueue buffers item without blocking.
func (q *Queue[T]) TryEnqueue(item T) error {
	if err := q.accepting(); err != nil {
		return err
	}
	select {
	case q.items <- envelope[T]{item: item}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Len reports how many items are buffered.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

func (q *Queue[T]) accepting() error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if !q.started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if q.stopped {
		return fmt.Errorf("queue %s stopped", q.name)
	}
	return nil
}

func (q *Queue[T]) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case env := <-q.items:
			if err := q.handler(q.ctx, env.item); err != nil {
				q.handleFailure(env, err)
			}
		}
	}
}

func (q *Queue[T]) handleFailure(env envelope[T], err error) {
	env.attempt++
	if env.attempt > q.maxRetries {
		q.logger.Error("queue item exceeded retries", zap.String("queue", q.name), zap.Int("attempts", env.attempt), zap.Error(err))
		return
	}
	q.logger.Warn("queue item failed, retrying", zap.String("queue", q.name), zap.Int("attempt", env.attempt), zap.Error(err))

	q.retries.Add(1)
	go func() {
		defer q.retries.Done()
		timer := time.NewTimer(q.retryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
			// Hand it to the drain in Stop if there is room.
			select {
			case q.items <- env:
			default:
			}
		case <-timer.C:
			select {
			case q.items <- env:
			default:
				q.logger.Error("queue full, dropping retry", zap.String("queue", q.name))
			}
		}
	}()
}
