package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/globetrotter/trip-planner-api/internal/api/metrics"
	"github.com/globetrotter/trip-planner-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

const kindVerification = "verification"

type mailJob struct {
	To    string
	Name  string
	Token string
}

// Dispatcher delivers verification mail asynchronously through a fixed set of
// workers, sharded by recipient so mail to the same address stays ordered.
// Delivery failures are logged by the worker; the enqueueing request has
// already succeeded by then, which is exactly the registration contract.
//
// Password-reset mail bypasses the queue: its caller needs the send result to
// roll back a pending reset, so it is delegated synchronously.
type Dispatcher struct {
	workers []chan mailJob
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers wrapping
// the given synchronous mailer. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan mailJob, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan mailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// SendVerificationEmail enqueues the mail and returns immediately. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) SendVerificationEmail(_ context.Context, to, name, token string) error {
	idx := d.shardIndex(to)
	d.workers[idx] <- mailJob{To: to, Name: name, Token: token}
	metrics.EmailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	return nil
}

// SendPasswordResetEmail delegates synchronously to the wrapped mailer.
func (d *Dispatcher) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	err := d.mailer.SendPasswordResetEmail(ctx, to, name, token)
	metrics.EmailsSentTotal.WithLabelValues("password_reset", resultLabel(err)).Inc()
	return err
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan mailJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.EmailQueueDepth.WithLabelValues(strconv.Itoa(id)).Dec()

			err := d.mailer.SendVerificationEmail(ctx, job.To, job.Name, job.Token)
			metrics.EmailsSentTotal.WithLabelValues(kindVerification, resultLabel(err)).Inc()
			if err != nil {
				d.log.Error().Err(err).
					Str("recipient", job.To).
					Int("worker_id", id).
					Msg("verification email delivery failed")
			}
		}
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
