// ABOUTME: Prefetch worker warms content cache entries in the background
// ABOUTME: Provides a managed worker pool plus a refresh timer for fixed selector sets

package workers

import (
	"context"
	"sync"
	"time"

	"newsdesk-api/core/domain"
	"newsdesk-api/core/interfaces"
)

// Refresher runs the origin path for one selector and writes the cache
type Refresher interface {
	Refresh(ctx context.Context, sel domain.Selector, count int) ([]domain.Article, error)
}

// Target is one (selector, count) pair to keep warm
type Target struct {
	Selector domain.Selector
	Count    int
}

// PrefetchJob represents a job for the prefetch pool
type PrefetchJob struct {
	Target   Target
	Context  context.Context
	ResultCh chan<- PrefetchResult
}

// PrefetchResult reports how a job went
type PrefetchResult struct {
	Target   Target
	Articles int
	Err      error
}

// PrefetchWorker manages background cache warming
type PrefetchWorker struct {
	refresher  Refresher
	logger     interfaces.Logger
	jobQueue   chan *PrefetchJob
	maxWorkers int
	queueSize  int
	jobTimeout time.Duration
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	running    bool
}

// WorkerConfig holds configuration for the prefetch worker
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int

	// JobTimeout bounds a single refresh, including its image gate
	JobTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 4,
		QueueSize:  64,
		JobTimeout: 30 * time.Second,
	}
}

// NewPrefetchWorker creates a new prefetch worker
func NewPrefetchWorker(refresher Refresher, logger interfaces.Logger, config WorkerConfig) *PrefetchWorker {
	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = defaults.JobTimeout
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	return &PrefetchWorker{
		refresher:  refresher,
		logger:     logger,
		maxWorkers: config.MaxWorkers,
		queueSize:  config.QueueSize,
		jobTimeout: config.JobTimeout,
	}
}

// Start starts the worker pool
func (pw *PrefetchWorker) Start() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.running {
		return nil
	}

	pw.ctx, pw.cancel = context.WithCancel(context.Background())
	pw.jobQueue = make(chan *PrefetchJob, pw.queueSize)

	for i := 0; i < pw.maxWorkers; i++ {
		pw.wg.Add(1)
		go pw.run(pw.ctx, pw.jobQueue)
	}

	pw.running = true
	return nil
}

// Stop stops the worker pool gracefully. Queued jobs that have not started
// are dropped.
func (pw *PrefetchWorker) Stop() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if !pw.running {
		return nil
	}

	pw.cancel()
	close(pw.jobQueue)
	pw.wg.Wait()

	pw.running = false
	return nil
}

// SubmitJob submits a job to the worker pool
func (pw *PrefetchWorker) SubmitJob(job *PrefetchJob) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if !pw.running {
		return ErrWorkerNotRunning
	}
	if job.Context == nil {
		job.Context = pw.ctx
	}

	select {
	case pw.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Submit queues a refresh of one target
func (pw *PrefetchWorker) Submit(target Target) error {
	return pw.SubmitJob(&PrefetchJob{Target: target})
}

// RunEvery submits every target immediately and then once per interval
// until ctx is cancelled. It blocks, so callers run it in a goroutine.
func (pw *PrefetchWorker) RunEvery(ctx context.Context, interval time.Duration, targets []Target) {
	if interval <= 0 || len(targets) == 0 {
		return
	}

	submitAll := func() {
		for _, t := range targets {
			if err := pw.Submit(t); err != nil {
				pw.logger.Warn("Prefetch submit failed", map[string]interface{}{
					"selector": t.Selector.String(),
					"count":    t.Count,
					"error":    err.Error(),
				})
			}
		}
	}

	submitAll()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			submitAll()
		case <-ctx.Done():
			return
		}
	}
}

// run is the main loop for each worker
func (pw *PrefetchWorker) run(ctx context.Context, queue <-chan *PrefetchJob) {
	defer pw.wg.Done()

	for {
		select {
		case job, ok := <-queue:
			if !ok {
				return
			}
			pw.processJob(ctx, job)
		case <-ctx.Done():
			return
		}
	}
}

// processJob refreshes a single target
func (pw *PrefetchWorker) processJob(poolCtx context.Context, job *PrefetchJob) {
	ctx, cancel := context.WithTimeout(job.Context, pw.jobTimeout)
	defer cancel()
	stop := context.AfterFunc(poolCtx, cancel)
	defer stop()

	articles, err := pw.refresher.Refresh(ctx, job.Target.Selector, job.Target.Count)
	result := PrefetchResult{Target: job.Target, Articles: len(articles), Err: err}

	if err != nil {
		pw.logger.Warn("Prefetch refresh failed", map[string]interface{}{
			"selector": job.Target.Selector.String(),
			"count":    job.Target.Count,
			"error":    err.Error(),
		})
	} else {
		pw.logger.Debug("Prefetch refreshed", map[string]interface{}{
			"selector": job.Target.Selector.String(),
			"count":    job.Target.Count,
			"articles": len(articles),
		})
	}

	if job.ResultCh != nil {
		select {
		case job.ResultCh <- result:
		case <-job.Context.Done():
		case <-poolCtx.Done():
		}
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
