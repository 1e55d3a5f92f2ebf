// Package database persists whole-collection JSON snapshots in named bbolt
// buckets, one bucket per store. Reads happen once at startup; writes are
// queued through an asynchronous Writer so mutators never wait on disk.
package database

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names, one per store.
const (
	BucketExpenses   = "expenses"
	BucketCategories = "categories"
	BucketBudgets    = "budgets"
	BucketSettings   = "settings"
	BucketRules      = "rules"
)

// Each bucket holds the full collection under a single key.
var snapshotKey = []byte("snapshot")

type DB struct {
	bolt *bolt.DB
}

func New(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	b, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &DB{bolt: b}, nil
}

func (d *DB) Close() error {
	return d.bolt.Close()
}

// Load reads the snapshot of a bucket into v. It returns false when the
// bucket has never been written, leaving v untouched.
func (d *DB) Load(bucket string, v any) (bool, error) {
	var data []byte

	err := d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}

		if raw := b.Get(snapshotKey); raw != nil {
			data = append(data, raw...)
		}

		return nil
	})
	if err != nil {
		return false, fmt.Errorf("reading bucket %s: %w", bucket, err)
	}

	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding bucket %s: %w", bucket, err)
	}

	return true, nil
}

// Clear removes a bucket's snapshot entirely.
func (d *DB) Clear(bucket string) error {
	err := d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}

		return b.Delete(snapshotKey)
	})
	if err != nil {
		return fmt.Errorf("clearing bucket %s: %w", bucket, err)
	}

	return nil
}

func (d *DB) save(bucket string, data []byte) error {
	err := d.bolt.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}

		return b.Put(snapshotKey, data)
	})
	if err != nil {
		return fmt.Errorf("writing bucket %s: %w", bucket, err)
	}

	return nil
}

// Writer flushes snapshots of one bucket in the background. Snapshots are
// serialized on the caller's goroutine, so the writer never touches live
// store state; failures reach onError and are never reflected back into the
// in-memory mutation that queued them.
type Writer struct {
	db      *DB
	bucket  string
	onError func(error)
	queue   chan []byte
	done    chan struct{}
}

func (d *DB) NewWriter(bucket string, onError func(error)) *Writer {
	if onError == nil {
		onError = func(err error) {
			slog.Error("persistence flush failed", "bucket", bucket, "error", err)
		}
	}

	w := &Writer{
		db:      d,
		bucket:  bucket,
		onError: onError,
		queue:   make(chan []byte, 16),
		done:    make(chan struct{}),
	}

	go w.run()

	return w
}

func (w *Writer) run() {
	defer close(w.done)

	for data := range w.queue {
		if err := w.db.save(w.bucket, data); err != nil {
			w.onError(err)
		}
	}
}

// Save queues a snapshot of v for persistence.
func (w *Writer) Save(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.onError(fmt.Errorf("encoding bucket %s: %w", w.bucket, err))
		return
	}

	w.queue <- data
}

// Close drains pending snapshots and stops the writer.
func (w *Writer) Close() {
	close(w.queue)
	<-w.done
}
