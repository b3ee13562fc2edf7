package ingestqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/exceptions"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// IngestJob is the payload stored in RabbitMQ: a pointer to an uploaded
// triage export waiting to be parsed into a dataset. Attempt counts
// deliveries so the worker can dead-letter jobs that keep failing.
type IngestJob struct {
	JobID     string `json:"job_id"`
	DatasetID string `json:"dataset_id"`
	Tenant    string `json:"tenant"`
	ObjectKey string `json:"object_key"`
	Attempt   int    `json:"attempt"`
}

// Service manages interactions with the RabbitMQ ingestion queues.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	prefetch int
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService initializes the queue service, declares durable queues, enables confirms, and sets QoS.
func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	// Declare ingest queue (durable)
	_, err = ch.QueueDeclare(
		constvars.IngestQueueName, // name
		true,                      // durable
		false,                     // autoDelete
		false,                     // exclusive
		false,                     // noWait
		nil,                       // args
	)
	if err != nil {
		return nil, err
	}

	// Declare dead-letter queue (durable)
	_, err = ch.QueueDeclare(
		constvars.IngestDeadQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	// Set QoS to limit unacked deliveries in-flight
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	// Enable publisher confirms for durability guarantees
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:       ch,
		log:      log,
		prefetch: prefetch,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

// EnqueueInput defines input for enqueue operation.
type EnqueueInput struct {
	Job IngestJob
}

// EnqueueOutput defines output for enqueue.
type EnqueueOutput struct{}

// ReenqueueInput defines input for reenqueueing a modified job back to the queue tail.
type ReenqueueInput struct {
	Job IngestJob
}

// ReenqueueOutput defines output for reenqueue.
type ReenqueueOutput struct{}

// EnqueueToDLQInput defines input for DLQ enqueue operation.
type EnqueueToDLQInput struct {
	Job IngestJob
}

// EnqueueToDLQOutput defines output for DLQ enqueue.
type EnqueueToDLQOutput struct{}

// FetchNInput specifies the maximum number of jobs to fetch.
type FetchNInput struct {
	Max int
}

// QueuedJob represents a fetched delivery and its decoded payload.
type QueuedJob struct {
	DeliveryTag uint64
	Job         IngestJob
}

// FetchNOutput returns up to N jobs.
type FetchNOutput struct {
	Jobs []QueuedJob
}

// AckMessageInput acknowledges a delivery so it is removed from the queue.
type AckMessageInput struct {
	DeliveryTag uint64
}

// AckMessageOutput is empty.
type AckMessageOutput struct{}

// Enqueue publishes a job to the ingest queue with persistence and waits for confirm.
func (s *Service) Enqueue(ctx context.Context, in *EnqueueInput) (*EnqueueOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("IngestQueue.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDatasetIDKey, in.Job.DatasetID),
	)

	if err := s.publishJob(ctx, constvars.IngestQueueName, in.Job); err != nil {
		return nil, err
	}
	return &EnqueueOutput{}, nil
}

// Reenqueue publishes the (possibly modified) job to the tail of the ingest queue and confirms.
func (s *Service) Reenqueue(ctx context.Context, in *ReenqueueInput) (*ReenqueueOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("IngestQueue.Reenqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDatasetIDKey, in.Job.DatasetID),
	)

	if err := s.publishJob(ctx, constvars.IngestQueueName, in.Job); err != nil {
		return nil, err
	}
	return &ReenqueueOutput{}, nil
}

// EnqueueToDeadQueue publishes the job to the DLQ and confirms.
func (s *Service) EnqueueToDeadQueue(ctx context.Context, in *EnqueueToDLQInput) (*EnqueueToDLQOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("IngestQueue.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDatasetIDKey, in.Job.DatasetID),
	)

	if err := s.publishJob(ctx, constvars.IngestDeadQueueName, in.Job); err != nil {
		return nil, err
	}
	return &EnqueueToDLQOutput{}, nil
}

// FetchN retrieves up to N jobs using basic.get without auto-ack.
func (s *Service) FetchN(ctx context.Context, in *FetchNInput) (*FetchNOutput, error) {
	n := in.Max
	if n <= 0 {
		n = 1
	}
	jobs := make([]QueuedJob, 0, n)

	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(constvars.IngestQueueName, false)
		if err != nil {
			return nil, exceptions.ErrQueueConsume(err, constvars.IngestQueueName)
		}
		if !ok {
			break
		}
		var payload IngestJob
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			// If payload is invalid JSON, move to DLQ to avoid poison message loop
			_ = d.Ack(false)
			_ = s.publishRaw(ctx, constvars.IngestDeadQueueName, d.Body)
			continue
		}
		jobs = append(jobs, QueuedJob{DeliveryTag: d.DeliveryTag, Job: payload})
	}

	return &FetchNOutput{Jobs: jobs}, nil
}

// AckMessage acknowledges a delivery by tag.
func (s *Service) AckMessage(ctx context.Context, in *AckMessageInput) (*AckMessageOutput, error) {
	if err := s.ch.Ack(in.DeliveryTag, false); err != nil {
		return nil, exceptions.ErrQueueAck(err)
	}
	return &AckMessageOutput{}, nil
}

func (s *Service) publishJob(ctx context.Context, queue string, job IngestJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrQueuePublish(err, queue)
	}
	return s.publishRaw(ctx, queue, body)
}

// publishRaw publishes a raw body to a queue and waits for the broker confirm.
func (s *Service) publishRaw(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := amqp.Publishing{ContentType: constvars.MIMEApplicationJSON, Body: body, DeliveryMode: amqp.Persistent}
	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrQueuePublish(err, queue)
	}
	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrQueuePublish(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublish(ctx.Err(), queue)
	}
	return nil
}
