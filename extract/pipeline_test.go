package extract

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carvetools/appcarve/imgfs"
	"github.com/carvetools/appcarve/internal/logging"
)

// markerTree builds the reference layout from the design discussion:
// one match under /A, an unmatched /B, and a match with a subdirectory
// under /C.
func markerTree() *imgfs.MemReader {
	m := imgfs.NewMemReader()
	m.AddFile("/A/Foo.Marker/x.txt", []byte("x"))
	m.AddFile("/B/y.txt", []byte("y"))
	m.AddFile("/C/Bar.Marker/sub/z.txt", []byte("z"))
	return m
}

func TestRunArchivesOnlyMarkedDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.zip")
	stats, err := Run(context.Background(), Config{
		Reader:      markerTree(),
		Root:        imgfs.RootPath(),
		Marker:      "Marker",
		Workers:     2,
		ArchivePath: out,
	}, logging.NewNop())
	require.NoError(t, err)

	require.Equal(t, 2, stats.Matched)
	require.Equal(t, 2, stats.Archived)
	require.Equal(t, 2, stats.FilesWritten)
	require.Zero(t, stats.FailedDirs)
	require.NotEmpty(t, stats.RunID)

	names := archiveEntries(t, out)
	require.True(t, names["Foo.Marker/x.txt"])
	require.True(t, names["Bar.Marker/sub/z.txt"])
	for name := range names {
		require.NotContains(t, name, "y.txt", "unmatched directory leaked into the archive")
	}
}

func TestRunUnreadableRootIsFatalAndTouchesNothing(t *testing.T) {
	m := imgfs.NewMemReader()
	m.FailDir("/", errors.New("no filesystem signature"))
	out := filepath.Join(t.TempDir(), "out.zip")

	_, err := Run(context.Background(), Config{
		Reader:      m,
		Root:        imgfs.RootPath(),
		Marker:      "Marker",
		Workers:     2,
		ArchivePath: out,
	}, logging.NewNop())
	require.ErrorIs(t, err, ErrSourceUnreadable)

	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr), "archive must not be created when the source is unreadable")
}

func TestRunAllWorkersTerminateForAnyPoolSize(t *testing.T) {
	for _, workers := range []int{1, 2, 5, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.zip")
			done := make(chan error, 1)
			go func() {
				stats, err := Run(context.Background(), Config{
					Reader:      markerTree(),
					Root:        imgfs.RootPath(),
					Marker:      "Marker",
					Workers:     workers,
					ArchivePath: out,
				}, logging.NewNop())
				if err == nil && stats.Archived != 2 {
					err = fmt.Errorf("archived %d directories, want 2", stats.Archived)
				}
				done <- err
			}()
			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(10 * time.Second):
				t.Fatal("pipeline deadlocked")
			}
		})
	}
}

func TestRunRerunAppendsWithoutLosingEntries(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.zip")
	cfg := Config{
		Reader:      markerTree(),
		Root:        imgfs.RootPath(),
		Marker:      "Marker",
		Workers:     3,
		ArchivePath: out,
	}

	_, err := Run(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	_, err = Run(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	// Duplicate entries across runs are fine; missing ones are not.
	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()
	counts := make(map[string]int)
	for _, f := range zr.File {
		counts[f.Name]++
	}
	require.GreaterOrEqual(t, counts["Foo.Marker/x.txt"], 1)
	require.GreaterOrEqual(t, counts["Bar.Marker/sub/z.txt"], 1)
}

func TestRunPartialFailureStillReportsSuccess(t *testing.T) {
	m := markerTree()
	m.FailDir("/C/Bar.Marker/sub", errors.New("cross-linked chain"))
	out := filepath.Join(t.TempDir(), "out.zip")

	stats, err := Run(context.Background(), Config{
		Reader:      m,
		Root:        imgfs.RootPath(),
		Marker:      "Marker",
		Workers:     2,
		ArchivePath: out,
	}, logging.NewNop())
	require.NoError(t, err, "per-subtree failures must not fail the run")
	require.Equal(t, 2, stats.Archived)
	require.Equal(t, 1, stats.FilesSkipped, "the dead subtree counts as skipped inside the sink")
	require.Equal(t, 1, stats.UnreadableDirs, "the scanner also reports the dead subtree")

	names := archiveEntries(t, out)
	require.True(t, names["Foo.Marker/x.txt"], "healthy directories must still be archived")
	require.False(t, names["Bar.Marker/sub/z.txt"])
}

func TestRunDefaultsWorkerCount(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.zip")
	stats, err := Run(context.Background(), Config{
		Reader:      markerTree(),
		Root:        imgfs.RootPath(),
		Marker:      "Marker",
		ArchivePath: out,
	}, logging.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, stats.Archived)
}

func TestRunCancelledContextDrainsGracefully(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "out.zip")
	type result struct {
		stats Stats
		err   error
	}
	done := make(chan result, 1)
	go func() {
		stats, err := Run(ctx, Config{
			Reader:      markerTree(),
			Root:        imgfs.RootPath(),
			Marker:      "Marker",
			Workers:     2,
			ArchivePath: out,
		}, logging.NewNop())
		done <- result{stats, err}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		require.Zero(t, res.stats.Archived)
	case <-time.After(10 * time.Second):
		t.Fatal("cancelled run did not drain")
	}
}
