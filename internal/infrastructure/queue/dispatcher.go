package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/metrics"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher fans audit entries out to every sink on a fixed set of workers.
// Entries are sharded by actor so one actor's entries are written in order.
// Record never blocks: when the target worker is full the entry is dropped.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	sinks   []ports.AuditSink
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ ports.AuditRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sinks []ports.AuditSink, log zerolog.Logger) *Dispatcher {
	return newDispatcher(numWorkers, channelBuffer, sinks, log)
}

func newDispatcher(numWorkers, buffer int, sinks []ports.AuditSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		sinks:   sinks,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, buffer)
	}
	return d
}

// Start launches the worker goroutines. Workers exit when ctx is cancelled or
// after Close has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues entry for the worker responsible for its actor.
func (d *Dispatcher) Record(entry domain.AuditEntry) {
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	idx := d.shardIndex(shardKey(entry))
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().Str("action", entry.Action).Int("worker_id", idx).Msg("audit queue full, entry dropped")
	}
}

// Close stops accepting entries and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func shardKey(e domain.AuditEntry) string {
	switch {
	case e.ActorID != 0:
		return "actor:" + strconv.FormatInt(e.ActorID, 10)
	case e.Login != "":
		return "login:" + e.Login
	default:
		return "action:" + e.Action
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.write(ctx, id, entry)
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, entry domain.AuditEntry) {
	start := time.Now()
	for _, sink := range d.sinks {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := sink.Write(wctx, entry)
		cancel()
		if err != nil {
			metrics.AuditWriteErrorsTotal.WithLabelValues(sink.Name()).Inc()
			d.log.Error().Err(err).
				Str("sink", sink.Name()).
				Str("action", entry.Action).
				Int("worker_id", id).
				Msg("audit write failed")
		}
	}
	metrics.AuditWriteDuration.Observe(time.Since(start).Seconds())
}
