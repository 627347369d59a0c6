package email

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/metrics"
)

const sendTimeout = 15 * time.Second

var ErrQueueFull = errors.New("email queue is full")

// Message is one out-of-band notification. Kind labels metrics and logs.
type Message struct {
	Kind    string
	To      string
	Subject string
	Body    string
}

// Queue delivers messages on background workers so request handlers never
// wait on the email provider. Delivery is best-effort: failures are logged
// and counted, never reported back to the enqueuer.
type Queue struct {
	sender  Sender
	logger  *slog.Logger
	msgs    chan Message
	workers int
	wg      sync.WaitGroup
}

func NewQueue(sender Sender, logger *slog.Logger, workers, size int) *Queue {
	return &Queue{
		sender:  sender,
		logger:  logger.With("component", "email_queue"),
		msgs:    make(chan Message, size),
		workers: workers,
	}
}

// Start launches the workers. They stop once ctx is cancelled and the
// buffered messages have been drained.
func (q *Queue) Start(ctx context.Context) {
	q.logger.Info("email queue started", "workers", q.workers, "capacity", cap(q.msgs))
	for range q.workers {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			q.run(ctx)
		}()
	}
}

// Wait blocks until every worker has exited.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// Enqueue never blocks. It reports false when the message was dropped.
func (q *Queue) Enqueue(m Message) bool {
	select {
	case q.msgs <- m:
		metrics.EmailQueueDepth.Set(float64(len(q.msgs)))
		return true
	default:
		metrics.EmailDeliveriesTotal.WithLabelValues(m.Kind, "dropped").Inc()
		q.logger.Warn("email queue full, dropping message", "kind", m.Kind, "to", m.To)
		return false
	}
}

// Ping reports unhealthy while the queue has no free slot.
func (q *Queue) Ping(_ context.Context) error {
	if len(q.msgs) == cap(q.msgs) {
		return ErrQueueFull
	}
	return nil
}

func (q *Queue) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			q.drain(context.WithoutCancel(ctx))
			return
		case m := <-q.msgs:
			q.deliver(ctx, m)
		}
	}
}

func (q *Queue) drain(ctx context.Context) {
	for {
		select {
		case m := <-q.msgs:
			q.deliver(ctx, m)
		default:
			return
		}
	}
}

func (q *Queue) deliver(ctx context.Context, m Message) {
	metrics.EmailQueueDepth.Set(float64(len(q.msgs)))

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := q.sender.Send(sendCtx, m.To, m.Subject, m.Body); err != nil {
		metrics.EmailDeliveriesTotal.WithLabelValues(m.Kind, "failed").Inc()
		q.logger.Error("email delivery failed", "kind", m.Kind, "to", m.To, "error", err)
		return
	}
	metrics.EmailDeliveriesTotal.WithLabelValues(m.Kind, "sent").Inc()
	q.logger.Debug("email delivered", "kind", m.Kind, "to", m.To)
}
