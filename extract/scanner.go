package extract

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/carvetools/appcarve/imgfs"
	"github.com/carvetools/appcarve/internal/logging"
)

// maxScanDepth caps traversal depth. A directory chain this deep on a real
// filesystem is almost certainly a looped directory entry in a damaged
// image, which would otherwise generate fresh paths forever.
const maxScanDepth = 255

// Scanner walks the image tree and enqueues every directory whose name
// contains the marker. It performs no archive I/O; its only side effects are
// queue pushes and diagnostics for unreadable directories.
type Scanner struct {
	Reader imgfs.Reader
	Marker string
	Log    *logging.Logger
}

// ScanResult summarizes one traversal.
type ScanResult struct {
	Matched    int // directories enqueued
	Unreadable int // directories that failed to list
}

// Scan traverses the tree under root and pushes matches onto queue. The walk
// uses an explicit stack rather than recursion and keeps a visited set keyed
// by path, so malformed images with looping directory chains still
// terminate. Unreadable directories are logged and skipped; they never abort
// the rest of the walk. Matched directories are still descended into, so a
// match nested under another match is enqueued as well.
func (s *Scanner) Scan(ctx context.Context, root imgfs.Path, queue *Queue) ScanResult {
	var res ScanResult
	visited := map[string]bool{root.String(): true}
	stack := []imgfs.Path{root}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			s.Log.Warn("scan cancelled", zap.Int("pending_dirs", len(stack)))
			return res
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := s.Reader.ReadDir(dir.String())
		if err != nil {
			res.Unreadable++
			s.Log.Warn("cannot read directory, skipping subtree",
				zap.String("path", dir.String()),
				zap.Error(err))
			continue
		}

		for _, entry := range entries {
			if entry.Name == "." || entry.Name == ".." {
				continue
			}
			child := dir.Child(entry.Name)
			if entry.Type != imgfs.TypeDir {
				continue
			}
			if strings.Contains(entry.Name, s.Marker) {
				queue.Push(child)
				res.Matched++
				s.Log.Debug("matched directory", zap.String("path", child.String()))
			}
			if visited[child.String()] {
				continue
			}
			if child.Depth() > maxScanDepth {
				s.Log.Warn("directory deeper than scan limit, possible cycle in image",
					zap.String("path", child.String()))
				continue
			}
			visited[child.String()] = true
			stack = append(stack, child)
		}
	}
	return res
}
