package extract

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carvetools/appcarve/imgfs"
	"github.com/carvetools/appcarve/internal/logging"
)

// DefaultWorkers is the pool size used when the caller does not pick one.
const DefaultWorkers = 5

// Config describes one extraction run.
type Config struct {
	Reader      imgfs.Reader
	Root        imgfs.Path
	Marker      string
	Workers     int
	ArchivePath string
}

// Stats is the outcome of a completed run. Per-directory and per-file
// failures are accumulated here rather than failing the run.
type Stats struct {
	RunID          string
	Matched        int // directories enqueued by the scanner
	Archived       int // directories fully or partially written
	FailedDirs     int // matched directories that could not be read at all
	DroppedDirs    int // matched directories drained after cancellation
	FilesWritten   int
	FilesSkipped   int
	UnreadableDirs int // subtrees the scanner could not list
	Duration       time.Duration
}

// Run executes the extraction pipeline: it starts the worker pool, scans the
// image for marker matches on the calling goroutine while the workers drain
// the queue, then shuts the pool down with one sentinel per worker and
// closes the archive after all workers have joined.
//
// Failure to read the source root or to open the archive is fatal and
// returns before any worker starts. Everything else is recorded in Stats.
func Run(ctx context.Context, cfg Config, log *logging.Logger) (Stats, error) {
	start := time.Now()
	stats := Stats{RunID: uuid.NewString()}
	log = log.With(zap.String("run_id", stats.RunID))

	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	// Probe the root before touching the archive so a dead source leaves
	// any previous output intact.
	if _, err := cfg.Reader.ReadDir(cfg.Root.String()); err != nil {
		return stats, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, cfg.Root.String(), err)
	}

	sink, err := OpenSink(cfg.ArchivePath, cfg.Reader, log)
	if err != nil {
		return stats, err
	}

	queue := NewQueue()
	var (
		wg       sync.WaitGroup
		archived atomic.Int64
		failed   atomic.Int64
		dropped  atomic.Int64
		written  atomic.Int64
		skipped  atomic.Int64
	)

	log.Info("starting extraction",
		zap.String("root", cfg.Root.String()),
		zap.String("marker", cfg.Marker),
		zap.Int("workers", cfg.Workers),
		zap.String("archive", cfg.ArchivePath))

	wg.Add(cfg.Workers)
	for i := range cfg.Workers {
		go func(id int) {
			defer wg.Done()
			for {
				task := queue.Pop()
				if task.Sentinel() {
					return
				}
				if ctx.Err() != nil {
					// Drain without archiving so shutdown stays graceful.
					dropped.Add(1)
					continue
				}
				res, err := sink.Absorb(task.Path)
				if err != nil {
					failed.Add(1)
					log.Warn("directory could not be archived",
						zap.Int("worker", id),
						zap.String("path", task.Path.String()),
						zap.Error(err))
					continue
				}
				archived.Add(1)
				written.Add(int64(res.Files))
				skipped.Add(int64(res.Skipped))
				log.Debug("archived directory",
					zap.Int("worker", id),
					zap.String("path", task.Path.String()),
					zap.Int("files", res.Files))
			}
		}(i)
	}

	scanner := &Scanner{Reader: cfg.Reader, Marker: cfg.Marker, Log: log}
	scanRes := scanner.Scan(ctx, cfg.Root, queue)

	// One sentinel per worker: every worker observes exactly one and exits,
	// even if it raced ahead of the scanner and sat blocked on an empty queue.
	for range cfg.Workers {
		queue.PushSentinel()
	}
	wg.Wait()

	if err := sink.Close(); err != nil {
		return stats, fmt.Errorf("finalizing archive: %w", err)
	}

	stats.Matched = scanRes.Matched
	stats.UnreadableDirs = scanRes.Unreadable
	stats.Archived = int(archived.Load())
	stats.FailedDirs = int(failed.Load())
	stats.DroppedDirs = int(dropped.Load())
	stats.FilesWritten = int(written.Load())
	stats.FilesSkipped = int(skipped.Load())
	stats.Duration = time.Since(start)

	log.Info("extraction complete",
		zap.Int("matched", stats.Matched),
		zap.Int("archived", stats.Archived),
		zap.Int("files", stats.FilesWritten),
		zap.Int("failed_dirs", stats.FailedDirs),
		zap.Int("unreadable_dirs", stats.UnreadableDirs),
		zap.Duration("elapsed", stats.Duration))
	return stats, nil
}
