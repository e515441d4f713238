package store

import (
	"context"
	"log/slog"
	"sync"
)

// Persister receives the full serialized value of a collection after each
// mutation of that collection.
type Persister interface {
	Persist(key string, data []byte)
}

type snapshotJob struct {
	key  string
	data []byte
	done chan struct{}
}

// SnapshotWriter applies collection snapshots to a KV in the background so
// mutations do not wait on the snapshot file. Writes for one key are applied
// in mutation order, so the last write for a key always wins.
type SnapshotWriter struct {
	kv     KV
	logger *slog.Logger

	jobs chan snapshotJob
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.RWMutex
	closed bool
}

// NewSnapshotWriter starts a single background writer over the provided KV.
func NewSnapshotWriter(kv KV, queueSize int, logger *slog.Logger) *SnapshotWriter {
	if queueSize <= 0 {
		queueSize = 64
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &SnapshotWriter{
		kv:     kv,
		logger: logger,
		jobs:   make(chan snapshotJob, queueSize),
	}

	w.wg.Add(1)
	go w.worker()

	return w
}

// Persist enqueues a snapshot write. After Shutdown has begun the write
// waits for the drain to finish and is then applied inline, so it cannot be
// clobbered by an older queued snapshot of the same key.
func (w *SnapshotWriter) Persist(key string, data []byte) {
	w.mu.RLock()
	if !w.closed {
		w.jobs <- snapshotJob{key: key, data: data}
		w.mu.RUnlock()
		return
	}
	w.mu.RUnlock()

	w.wg.Wait()
	w.write(snapshotJob{key: key, data: data})
}

// Flush blocks until every snapshot enqueued before the call has been
// written. Used by tests and the seed command for deterministic state.
func (w *SnapshotWriter) Flush(ctx context.Context) error {
	w.mu.RLock()
	if w.closed {
		// shutdown drains the queue; nothing can be outstanding
		w.mu.RUnlock()
		return nil
	}
	done := make(chan struct{})
	w.jobs <- snapshotJob{done: done}
	w.mu.RUnlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Shutdown closes the queue, letting the worker drain every outstanding
// snapshot before it exits.
func (w *SnapshotWriter) Shutdown(ctx context.Context) error {
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.jobs)
		w.mu.Unlock()
	})

	finished := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(finished)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-finished:
		return nil
	}
}

func (w *SnapshotWriter) worker() {
	defer w.wg.Done()

	for job := range w.jobs {
		w.write(job)
	}
}

func (w *SnapshotWriter) write(job snapshotJob) {
	if job.done != nil {
		close(job.done)
		return
	}
	if err := w.kv.Put(job.key, job.data); err != nil {
		w.logger.Error("snapshot write failed", "key", job.key, "error", err)
	}
}
