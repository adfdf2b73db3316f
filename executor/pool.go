package executor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/flop"
	"github.com/hupe1980/flop/internal/queue"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Func is the body of a task. ctx is cancelled when the task is cancelled.
type Func func(ctx context.Context) (any, error)

type task struct {
	fn       Func
	ctx      context.Context
	priority float64
	callback func(result any, err error)
	future   *Future
	queuedAt time.Time
}

// Pool executes submitted tasks on a fixed number of workers.
// It is safe for concurrent use.
type Pool struct {
	opts    Options
	logger  *flop.Logger
	metrics flop.MetricsCollector

	mu     sync.Mutex
	cond   *sync.Cond
	queue  *queue.PriorityQueue[*task]
	closed bool

	seq      atomic.Uint64
	slots    *semaphore.Weighted // nil if unbounded
	limiter  *rate.Limiter       // nil if unlimited
	group    errgroup.Group
	closeErr error
	once     sync.Once
}

// New creates a Pool and starts its workers.
func New(optFns ...func(o *Options)) *Pool {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultOptions.Workers
	}
	if opts.Logger == nil {
		opts.Logger = flop.NoopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = flop.NoopMetricsCollector{}
	}

	p := &Pool{
		opts:    opts,
		logger:  opts.Logger.WithComponent("executor"),
		metrics: opts.Metrics,
		queue:   queue.New[*task](max(opts.QueueCapacity, 0)),
	}
	p.cond = sync.NewCond(&p.mu)
	if opts.QueueCapacity > 0 {
		p.slots = semaphore.NewWeighted(int64(opts.QueueCapacity))
	}
	if opts.RateLimit > 0 {
		p.limiter = rate.NewLimiter(opts.RateLimit, max(opts.Burst, 1))
	}

	for range opts.Workers {
		p.group.Go(p.worker)
	}
	return p
}

// Submit queues fn for execution. Without WithPriority the task runs after
// all prioritized tasks. ctx is the parent of the task context; if it is
// done before the task starts, the task is cancelled.
func (p *Pool) Submit(ctx context.Context, fn Func, opts ...TaskOption) (*Future, error) {
	t := &task{
		fn:       fn,
		priority: math.NaN(),
	}
	for _, o := range opts {
		o(t)
	}

	if p.slots != nil && !p.slots.TryAcquire(1) {
		return nil, p.reject(ctx, ErrQueueFull)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.releaseSlot()
		return nil, p.reject(ctx, ErrClosed)
	}
	seq := p.seq.Add(1)
	tctx, cancel := context.WithCancel(ctx)
	t.ctx = tctx
	t.future = newFuture(seq, t.priority, cancel)
	t.queuedAt = time.Now()
	p.queue.Push(queue.Item[*task]{Value: t, Priority: t.priority, Seq: seq})
	p.mu.Unlock()
	p.cond.Signal()

	return t.future, nil
}

// Queued returns the number of tasks waiting to run.
func (p *Pool) Queued() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// Close stops accepting tasks, lets the workers drain the queue and waits for
// them to exit or for ctx to be done. It is safe to call more than once.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()

	done := make(chan struct{})
	go func() {
		p.once.Do(func() { p.closeErr = p.group.Wait() })
		close(done)
	}()

	select {
	case <-done:
		return p.closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) reject(ctx context.Context, err error) error {
	p.metrics.RecordRejected()
	p.logger.LogRejected(ctx, p.Queued(), err)
	return err
}

func (p *Pool) releaseSlot() {
	if p.slots != nil {
		p.slots.Release(1)
	}
}

// next blocks until a task is available or the pool is closed and drained.
func (p *Pool) next() (*task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.queue.Len() == 0 && !p.closed {
		p.cond.Wait()
	}
	it, ok := p.queue.Pop()
	if !ok {
		return nil, false
	}
	p.releaseSlot()
	return it.Value, true
}

func (p *Pool) worker() error {
	for {
		t, ok := p.next()
		if !ok {
			return nil
		}
		p.run(t)
	}
}

func (p *Pool) run(t *task) {
	f := t.future
	if t.ctx.Err() != nil {
		f.Cancel()
	}
	if p.limiter != nil && !f.Cancelled() {
		if err := p.limiter.Wait(t.ctx); err != nil {
			f.Cancel()
		}
	}
	if !f.start() {
		return
	}

	wait := time.Since(t.queuedAt)
	start := time.Now()
	result, err := p.call(t)
	elapsed := time.Since(start)

	p.metrics.RecordTask(wait, elapsed, err)
	p.logger.LogTask(t.ctx, f.seq, t.priority, elapsed, err)

	if !f.complete(result, err) {
		return
	}
	if t.callback != nil {
		p.metrics.RecordCallback(p.callback(t, result, err))
	}
}

func (p *Pool) call(t *task) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.LogTaskPanicked(t.ctx, t.future.seq, r)
			result, err = nil, fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return t.fn(t.ctx)
}

func (p *Pool) callback(t *task, result any, err error) (cbErr error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.LogTaskPanicked(t.ctx, t.future.seq, r)
			cbErr = fmt.Errorf("%w: callback: %v", ErrTaskPanicked, r)
		}
	}()
	t.callback(result, err)
	return nil
}
