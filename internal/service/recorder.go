package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"snipurl-platform/internal/geoip"
	"snipurl-platform/internal/model"
	"snipurl-platform/internal/security"
	"snipurl-platform/internal/store"
	"snipurl-platform/pkg/metrics"
)

const (
	recorderQueueSize = 1024
	recorderWorkers   = 4
	recordTimeout     = 10 * time.Second
)

type clickJob struct {
	linkID   string
	clientIP string
}

// ClickRecorder performs click accounting off the redirect hot path. Jobs are
// queued on a buffered channel; when the queue is full the event is dropped
// and logged, never pushed back on the caller. Each job resolves geolocation,
// then writes the ledger row and the counter increment in one transaction.
type ClickRecorder struct {
	clicks   store.ClickStore
	resolver geoip.Resolver
	jobs     chan clickJob
	pending  sync.WaitGroup
	stopOnce sync.Once
	logger   *zap.SugaredLogger
}

func NewClickRecorder(clicks store.ClickStore, resolver geoip.Resolver, logger *zap.SugaredLogger) *ClickRecorder {
	return &ClickRecorder{
		clicks:   clicks,
		resolver: resolver,
		jobs:     make(chan clickJob, recorderQueueSize),
		logger:   logger.Named("click_recorder"),
	}
}

// Start launches the worker goroutines.
func (r *ClickRecorder) Start() {
	for i := 0; i < recorderWorkers; i++ {
		go r.worker()
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (r *ClickRecorder) Stop() {
	r.stopOnce.Do(func() {
		close(r.jobs)
	})
	r.pending.Wait()
}

// Record enqueues a click without blocking. Accounting is best effort: a full
// queue drops the event.
func (r *ClickRecorder) Record(linkID, clientIP string) {
	r.pending.Add(1)
	select {
	case r.jobs <- clickJob{linkID: linkID, clientIP: clientIP}:
	default:
		r.pending.Done()
		metrics.ClicksDropped.Inc()
		r.logger.Warnw("click queue full, dropping event", "link_id", linkID)
	}
}

// Flush blocks until every enqueued job has been processed.
func (r *ClickRecorder) Flush() {
	r.pending.Wait()
}

func (r *ClickRecorder) worker() {
	for job := range r.jobs {
		r.process(job)
		r.pending.Done()
	}
}

func (r *ClickRecorder) process(job clickJob) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	location := r.resolver.Resolve(ctx, job.clientIP)

	event := &model.ClickEvent{
		ID:        uuid.NewString(),
		LinkID:    job.linkID,
		Country:   location.Country,
		City:      location.City,
		IPHash:    security.HashIP(job.clientIP),
		CreatedAt: time.Now(),
	}

	if err := r.clicks.AppendWithIncrement(ctx, event); err != nil {
		// Accounting failures never surface to the redirect path.
		r.logger.Errorw("click accounting failed", "link_id", job.linkID, "error", err)
		return
	}
	metrics.ClicksRecorded.Inc()
}
