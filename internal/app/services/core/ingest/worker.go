package ingest

import (
	"context"
	"fmt"
	"time"

	"slotplan-service/internal/app/config"
	"slotplan-service/internal/app/contracts"
	"slotplan-service/internal/app/models"
	"slotplan-service/internal/app/services/shared/ingestqueue"
	"slotplan-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// Worker drains the ingest queue with at-least-once semantics: it downloads
// the uploaded export, parses it, stores the rows and flips the dataset to
// ready. A parse failure is permanent and dead-letters immediately; storage
// and database failures requeue with an attempt counter until the retry
// threshold moves the job to the DLQ.
type Worker struct {
	log      *zap.Logger
	cfg      *config.InternalConfig
	locker   contracts.LockerService
	queue    *ingestqueue.Service
	storage  contracts.ObjectStorage
	datasets contracts.DatasetRepository
	requests contracts.TriageRequestRepository
	stop     chan struct{}
}

// NewWorker creates a new worker instance.
func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	queue *ingestqueue.Service,
	storage contracts.ObjectStorage,
	datasetRepo contracts.DatasetRepository,
	requestRepo contracts.TriageRequestRepository,
) *Worker {
	return &Worker{
		log:      log,
		cfg:      cfg,
		locker:   lockerSvc,
		queue:    queue,
		storage:  storage,
		datasets: datasetRepo,
		requests: requestRepo,
		stop:     make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	interval := time.Duration(w.cfg.Ingest.WorkerIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)

	fmt.Println("Ingest worker started")

	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case now := <-ticker.C:
				w.runOnce(ctx, now, interval)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

func (w *Worker) runOnce(ctx context.Context, now time.Time, interval time.Duration) {
	// Best-effort distributed lock so only one replica drains per tick.
	ttl := interval - 1*time.Second
	if ttl < 1*time.Second {
		ttl = 1 * time.Second
	}
	acquired, lockVal, err := w.locker.TryLock(ctx, constvars.RedisKeyLockIngestRun, ttl)
	if err != nil {
		w.log.Info("ingest worker lock attempt failed",
			zap.Error(err))
		return
	}
	if !acquired {
		w.log.Warn("ingest worker lock not acquired; another instance is running")
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.RedisKeyLockIngestRun, lockVal); err != nil {
			w.log.Error("ingest worker unlock failed", zap.Error(err))
		}
	}()

	max := w.cfg.Ingest.WorkerBatchSize
	if max <= 0 {
		max = 1
	}
	out, err := w.queue.FetchN(ctx, &ingestqueue.FetchNInput{Max: max})
	if err != nil {
		w.log.Info("ingest queue.FetchN error", zap.Error(err))
		return
	}
	if len(out.Jobs) == 0 {
		return
	}

	w.log.Info("ingest queue.FetchN success", zap.Int("fetched_count", len(out.Jobs)))

	for _, queued := range out.Jobs {
		w.processJob(ctx, queued)
	}
}

func (w *Worker) processJob(ctx context.Context, queued ingestqueue.QueuedJob) {
	job := queued.Job
	w.log.Info("processing ingest job",
		zap.String(constvars.LoggingJobIDKey, job.JobID),
		zap.String(constvars.LoggingDatasetIDKey, job.DatasetID),
		zap.String(constvars.LoggingTenantKey, job.Tenant),
		zap.Int("attempt", job.Attempt))

	dataset, err := w.datasets.FindDatasetByID(ctx, job.Tenant, job.DatasetID)
	if err != nil {
		w.requeueOnError(ctx, queued, err)
		return
	}
	if dataset == nil {
		// Dataset was deleted while the job sat in the queue.
		w.ack(ctx, queued)
		w.log.Info("ingest job dropped; dataset no longer exists",
			zap.String(constvars.LoggingDatasetIDKey, job.DatasetID))
		return
	}

	dataset.Status = constvars.DatasetStatusProcessing
	if err := w.datasets.UpdateDataset(ctx, dataset); err != nil {
		w.requeueOnError(ctx, queued, err)
		return
	}

	content, err := w.storage.DownloadObject(ctx, job.ObjectKey)
	if err != nil {
		w.requeueOnError(ctx, queued, err)
		return
	}

	rows, err := ParseWorkbook(content)
	if err != nil {
		// A file that does not parse never will; fail the dataset and
		// park the job for inspection.
		w.failDataset(ctx, dataset, err.Error())
		w.deadLetter(ctx, queued)
		return
	}

	for i := range rows {
		rows[i].DatasetID = job.DatasetID
		rows[i].Tenant = job.Tenant
	}

	// Reprocessing after a partial failure must not double rows.
	if err := w.requests.DeleteRequestsByDatasetID(ctx, job.DatasetID); err != nil {
		w.requeueOnError(ctx, queued, err)
		return
	}
	inserted, err := w.requests.InsertManyRequests(ctx, rows)
	if err != nil {
		w.requeueOnError(ctx, queued, err)
		return
	}

	now := time.Now().UTC()
	dataset.Status = constvars.DatasetStatusReady
	dataset.FailureReason = ""
	dataset.RequestCount = inserted
	dataset.ProcessedAt = &now
	if err := w.datasets.UpdateDataset(ctx, dataset); err != nil {
		w.requeueOnError(ctx, queued, err)
		return
	}

	w.ack(ctx, queued)
	w.log.Info("ingest job processed",
		zap.String(constvars.LoggingJobIDKey, job.JobID),
		zap.String(constvars.LoggingDatasetIDKey, job.DatasetID),
		zap.Int(constvars.LoggingRowCountKey, inserted))
}

// requeueOnError handles transient failures: requeue with an incremented
// attempt counter, or dead-letter once the threshold is reached.
func (w *Worker) requeueOnError(ctx context.Context, queued ingestqueue.QueuedJob, cause error) {
	job := queued.Job
	job.Attempt++

	threshold := w.cfg.Ingest.RetryThreshold
	if threshold <= 0 {
		threshold = 5
	}

	if job.Attempt >= threshold {
		w.log.Warn("ingest job exhausted retries",
			zap.String(constvars.LoggingJobIDKey, job.JobID),
			zap.String(constvars.LoggingDatasetIDKey, job.DatasetID),
			zap.Int("attempt", job.Attempt),
			zap.Error(cause))

		if dataset, err := w.datasets.FindDatasetByID(ctx, job.Tenant, job.DatasetID); err == nil && dataset != nil {
			w.failDataset(ctx, dataset, fmt.Sprintf("ingestion retries exhausted: %s", cause.Error()))
		}
		queued.Job = job
		w.deadLetter(ctx, queued)
		return
	}

	if _, err := w.queue.Reenqueue(ctx, &ingestqueue.ReenqueueInput{Job: job}); err != nil {
		w.log.Info("ingest reenqueue failed",
			zap.String(constvars.LoggingJobIDKey, job.JobID),
			zap.Error(err))
		return
	}
	w.ack(ctx, queued)
	w.log.Info("ingest job requeued after transient failure",
		zap.String(constvars.LoggingJobIDKey, job.JobID),
		zap.String(constvars.LoggingDatasetIDKey, job.DatasetID),
		zap.Int("attempt", job.Attempt),
		zap.Error(cause))
}

func (w *Worker) deadLetter(ctx context.Context, queued ingestqueue.QueuedJob) {
	if _, err := w.queue.EnqueueToDeadQueue(ctx, &ingestqueue.EnqueueToDLQInput{Job: queued.Job}); err != nil {
		w.log.Info("ingest enqueue to DLQ failed",
			zap.String(constvars.LoggingJobIDKey, queued.Job.JobID),
			zap.Error(err))
		return
	}
	w.ack(ctx, queued)
	w.log.Info("ingest job moved to DLQ",
		zap.String(constvars.LoggingJobIDKey, queued.Job.JobID),
		zap.String(constvars.LoggingDatasetIDKey, queued.Job.DatasetID))
}

func (w *Worker) failDataset(ctx context.Context, dataset *models.Dataset, reason string) {
	dataset.Status = constvars.DatasetStatusFailed
	dataset.FailureReason = reason
	if err := w.datasets.UpdateDataset(ctx, dataset); err != nil {
		w.log.Error("failed to mark dataset as failed",
			zap.String(constvars.LoggingDatasetIDKey, dataset.ID),
			zap.Error(err))
	}
}

func (w *Worker) ack(ctx context.Context, queued ingestqueue.QueuedJob) {
	if _, err := w.queue.AckMessage(ctx, &ingestqueue.AckMessageInput{DeliveryTag: queued.DeliveryTag}); err != nil {
		w.log.Info("ingest ack failed",
			zap.String(constvars.LoggingJobIDKey, queued.Job.JobID),
			zap.Error(err))
	}
}
