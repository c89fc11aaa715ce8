package jobqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/franhub/franhub/internal/pkg/cache"
)

// Redis layout: one JSON blob per job under jobKeyPrefix, two lists for
// pending and in-flight job IDs, and a hash of per-status counters.
const (
	jobKeyPrefix = "franhub:job:"
	pendingList  = "franhub:jobs:pending"
	inflightList = "franhub:jobs:inflight"
	statsHash    = "franhub:jobs:stats"

	DefaultMaxRetries = 3

	// Blobs expire on their own so abandoned jobs cannot accumulate.
	jobTTL = 24 * time.Hour
)

// Queue runs background jobs off redis. Dequeue moves IDs from the
// pending list to the in-flight list in one step, so a worker crash
// leaves the ID visible to the stuck-job sweep instead of losing it.
type Queue struct {
	client  *redis.Client
	workers int
	slots   chan struct{}
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

func NewQueue(workers int) *Queue {
	if workers <= 0 {
		workers = 3
	}

	return &Queue{
		client:  cache.GetClient(),
		workers: workers,
		slots:   make(chan struct{}, workers),
		stopCh:  make(chan struct{}),
	}
}

// Start launches the worker pool and the stuck-job sweep. Safe to call
// twice.
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		return
	}
	q.running = true

	log.Infof("job queue: starting %d workers", q.workers)
	for i := 0; i < q.workers; i++ {
		q.slots <- struct{}{}
	}
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}

	q.wg.Add(1)
	go q.sweepStuckJobs(10*time.Minute, time.Minute)
}

// Stop signals all workers and waits for them to drain.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.running {
		return
	}

	close(q.stopCh)
	q.running = false
	q.wg.Wait()
	log.Info("job queue: stopped")
}

// EnqueueJob stores the job blob and pushes its ID onto the pending list.
func (q *Queue) EnqueueJob(jobType JobType, payload map[string]interface{}) (*Job, error) {
	ctx := context.Background()
	now := time.Now()

	job := &Job{
		ID:         uuid.New().String(),
		Type:       jobType,
		Status:     JobStatusPending,
		Payload:    payload,
		CreatedAt:  now,
		UpdatedAt:  now,
		MaxRetries: DefaultMaxRetries,
	}

	blob, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("marshal job: %w", err)
	}

	pipe := q.client.Pipeline()
	pipe.Set(ctx, jobKeyPrefix+job.ID, blob, jobTTL)
	pipe.LPush(ctx, pendingList, job.ID)
	pipe.HIncrBy(ctx, statsHash, string(JobStatusPending), 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	log.Debugf("job queue: enqueued %s job %s", job.Type, job.ID)
	return job, nil
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	ctx := context.Background()

	for {
		select {
		case <-q.stopCh:
			return
		default:
			<-q.slots

			job, err := q.dequeue(ctx)
			if err != nil {
				if err != redis.Nil {
					log.Errorf("job queue: worker %d dequeue: %v", id, err)
				}
				q.slots <- struct{}{}
				time.Sleep(time.Second)
				continue
			}

			if job != nil {
				q.run(ctx, job)
			}
			q.slots <- struct{}{}
		}
	}
}

// dequeue blocks briefly for the next pending ID, moving it to the
// in-flight list, and loads its blob.
func (q *Queue) dequeue(ctx context.Context) (*Job, error) {
	jobID, err := q.client.BRPopLPush(ctx, pendingList, inflightList, time.Second).Result()
	if err != nil {
		return nil, err
	}

	blob, err := q.client.Get(ctx, jobKeyPrefix+jobID).Result()
	if err != nil {
		q.client.LRem(ctx, inflightList, 1, jobID)
		return nil, fmt.Errorf("job %s has no blob", jobID)
	}

	var job Job
	if err := json.Unmarshal([]byte(blob), &job); err != nil {
		q.client.LRem(ctx, inflightList, 1, jobID)
		return nil, fmt.Errorf("unmarshal job %s: %w", jobID, err)
	}

	return &job, nil
}

func (q *Queue) run(ctx context.Context, job *Job) {
	job.MarkAsProcessing()
	q.persist(ctx, job)

	var err error
	switch job.Type {
	case JobTypeLeadNotification:
		err = q.processLeadNotificationJob(job)
	case JobTypeReceiptEmail:
		err = q.processReceiptEmailJob(job)
	default:
		err = fmt.Errorf("unknown job type: %s", job.Type)
	}

	if err == nil {
		job.MarkAsCompleted()
		q.bumpStat(ctx, JobStatusCompleted)
		q.client.Del(ctx, jobKeyPrefix+job.ID)
		q.client.LRem(ctx, inflightList, 1, job.ID)
		return
	}

	job.MarkAsFailed(err.Error())
	if job.IsRetryable() {
		log.Warnf("job queue: job %s failed, retry %d/%d: %v", job.ID, job.RetryCount, job.MaxRetries, err)
		job.MarkAsRetrying()
		q.persist(ctx, job)
		// backoff grows with the attempt count
		time.AfterFunc(time.Minute*time.Duration(job.RetryCount), func() {
			q.client.LPush(ctx, pendingList, job.ID)
		})
	} else {
		log.Errorf("job queue: job %s failed permanently after %d attempts: %v", job.ID, job.RetryCount, err)
		q.bumpStat(ctx, JobStatusFailed)
		q.persist(ctx, job)
	}

	q.client.LRem(ctx, inflightList, 1, job.ID)
}

// sweepStuckJobs requeues in-flight jobs whose worker died mid-run.
func (q *Queue) sweepStuckJobs(maxAge, interval time.Duration) {
	defer q.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	ctx := context.Background()

	for {
		select {
		case <-q.stopCh:
			return
		case <-ticker.C:
			ids, err := q.client.LRange(ctx, inflightList, 0, -1).Result()
			if err != nil {
				log.Errorf("job queue: sweep scan: %v", err)
				continue
			}
			for _, id := range ids {
				q.recoverIfStuck(ctx, id, maxAge)
			}
		}
	}
}

func (q *Queue) recoverIfStuck(ctx context.Context, jobID string, maxAge time.Duration) {
	blob, err := q.client.Get(ctx, jobKeyPrefix+jobID).Result()
	if err != nil {
		// blob expired or was deleted: nothing to recover
		q.client.LRem(ctx, inflightList, 1, jobID)
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(blob), &job); err != nil {
		q.client.LRem(ctx, inflightList, 1, jobID)
		return
	}

	if job.Status != JobStatusProcessing {
		q.client.LRem(ctx, inflightList, 1, jobID)
		return
	}

	started := job.ProcessedAt
	if started == nil || started.IsZero() {
		t := job.UpdatedAt
		if t.IsZero() {
			t = job.CreatedAt
		}
		started = &t
	}

	if age := time.Since(*started); age > maxAge {
		log.Warnf("job queue: requeueing stuck %s job %s (age %s)", job.Type, job.ID, age)
		job.Status = JobStatusPending
		job.ErrorMsg = "recovered after worker loss"
		job.UpdatedAt = time.Now()
		q.persist(ctx, &job)
		q.client.LRem(ctx, inflightList, 1, jobID)
		q.client.RPush(ctx, pendingList, jobID)
	}
}

func (q *Queue) persist(ctx context.Context, job *Job) {
	blob, err := json.Marshal(job)
	if err != nil {
		log.Errorf("job queue: marshal job %s: %v", job.ID, err)
		return
	}
	if err := q.client.Set(ctx, jobKeyPrefix+job.ID, blob, jobTTL).Err(); err != nil {
		log.Errorf("job queue: persist job %s: %v", job.ID, err)
	}
}

func (q *Queue) bumpStat(ctx context.Context, status JobStatus) {
	if err := q.client.HIncrBy(ctx, statsHash, string(status), 1).Err(); err != nil {
		log.Errorf("job queue: stats update: %v", err)
	}
}

// GetJob loads a live job blob by ID. Completed jobs are gone.
func (q *Queue) GetJob(ctx context.Context, jobID string) (*Job, error) {
	blob, err := q.client.Get(ctx, jobKeyPrefix+jobID).Result()
	if err != nil {
		return nil, err
	}

	var job Job
	if err := json.Unmarshal([]byte(blob), &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &job, nil
}

// GetJobStats returns the lifetime per-status counters.
func (q *Queue) GetJobStats(ctx context.Context) (map[JobStatus]int64, error) {
	raw, err := q.client.HGetAll(ctx, statsHash).Result()
	if err != nil {
		return nil, err
	}

	stats := make(map[JobStatus]int64, len(raw))
	for status, count := range raw {
		if n, err := strconv.ParseInt(count, 10, 64); err == nil {
			stats[JobStatus(status)] = n
		}
	}
	return stats, nil
}

func (q *Queue) GetQueueSize(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, pendingList).Result()
}

func (q *Queue) GetProcessingSize(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, inflightList).Result()
}
