package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sjperalta/dpa-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker manages background jobs and scheduled tasks
type Worker struct {
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	queue         chan namedJob
	maxConcurrent int

	stats   WorkerStats
	statsMu sync.RWMutex

	schedules   map[string]*ScheduleStatus
	schedulesMu sync.RWMutex

	closeMu sync.RWMutex
	closed  bool
}

type namedJob struct {
	name string
	run  Job
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
	MaxConcurrent int   `json:"max_concurrent"`
}

// ScheduleStatus describes a recurring job and its most recent run
type ScheduleStatus struct {
	Name      string        `json:"name"`
	Interval  time.Duration `json:"interval"`
	Runs      int64         `json:"runs"`
	LastRun   *time.Time    `json:"last_run,omitempty"`
	LastError string        `json:"last_error,omitempty"`
}

// NewWorker creates a worker with N concurrent processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		ctx:           ctx,
		cancel:        cancel,
		queue:         make(chan namedJob, 100),
		maxConcurrent: numWorkers,
		schedules:     make(map[string]*ScheduleStatus),
	}

	// Start worker goroutines
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to be processed by the worker pool. When the queue is full
// the job runs on the caller's goroutine. Jobs enqueued after Shutdown are dropped.
func (w *Worker) Enqueue(name string, job Job) {
	w.closeMu.RLock()
	defer w.closeMu.RUnlock()
	if w.closed {
		logger.Warn("[Worker] Dropping job after shutdown", "job", name)
		return
	}

	select {
	case w.queue <- namedJob{name: name, run: job}:
	default:
		logger.Warn("[Worker] Queue full, running job synchronously", "job", name)
		w.run(name, job)
	}
}

// process handles jobs from the queue until it is closed
func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for job := range w.queue {
		start := time.Now()
		if w.run(job.name, job.run) == nil {
			logger.Debug("[Worker] Job completed", "worker", workerID, "job", job.name, "elapsed", time.Since(start))
		}
	}
}

// run executes a job with panic recovery and stats tracking. A panic is
// reported as the job's error.
func (w *Worker) run(name string, job Job) (err error) {
	w.trackJobStart()
	defer w.trackJobEnd()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Worker] Job panic", "job", name, "panic", r)
			w.trackJobFailure()
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	// Jobs drained during shutdown still get to finish their writes.
	if err = job(context.WithoutCancel(w.ctx)); err != nil {
		logger.Error("[Worker] Job error", "job", name, "error", err)
		w.trackJobFailure()
	}
	return err
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals.
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.schedulesMu.Lock()
	w.schedules[name] = &ScheduleStatus{Name: name, Interval: interval}
	w.schedulesMu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.runScheduled(name, job)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.runScheduled(name, job)
			}
		}
	}()
}

func (w *Worker) runScheduled(name string, job Job) {
	start := time.Now()
	err := w.run(name, job)

	w.schedulesMu.Lock()
	defer w.schedulesMu.Unlock()
	st := w.schedules[name]
	st.Runs++
	st.LastRun = &start
	st.LastError = ""
	if err != nil {
		st.LastError = err.Error()
	}
}

// Schedules returns a snapshot of the recurring jobs
func (w *Worker) Schedules() []ScheduleStatus {
	w.schedulesMu.RLock()
	defer w.schedulesMu.RUnlock()
	out := make([]ScheduleStatus, 0, len(w.schedules))
	for _, st := range w.schedules {
		out = append(out, *st)
	}
	return out
}

// Shutdown stops the scheduler, drains queued jobs and waits for running ones
func (w *Worker) Shutdown() {
	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.closeMu.Unlock()

	w.cancel()
	w.wg.Wait()
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.MaxConcurrent = w.maxConcurrent
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// trackJobEnd counts every finished job; FailedJobs is the failed subset.
func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
