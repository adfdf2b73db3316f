// Package executor runs tasks on a fixed set of workers in priority order.
//
// Tasks with a higher priority run first. Tasks submitted without a priority
// (or with NaN) run after every prioritized task, and tasks of equal priority
// run in submission order. The queue can be bounded, in which case Submit
// fails fast with ErrQueueFull, and task starts can be rate limited.
//
// A completion callback attached with WithCallback runs on the worker after
// the task finishes, unless the task was cancelled first.
//
//	pool := executor.New(func(o *executor.Options) {
//	    o.Workers = 4
//	    o.QueueCapacity = 1024
//	})
//	defer pool.Close(context.Background())
//
//	f, err := pool.Submit(ctx, func(ctx context.Context) (any, error) {
//	    return v.DotSparse(w), nil
//	}, executor.WithPriority(10))
//	dot, err := f.Wait(ctx)
package executor
