package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	gopath "path"
	"sync"

	"github.com/klauspost/compress/flate"
	"go.uber.org/zap"

	"github.com/carvetools/appcarve/imgfs"
	"github.com/carvetools/appcarve/internal/logging"
)

// Sink owns the single output archive shared by all workers. Every Absorb
// call runs under one mutex, so entries from different workers never
// interleave and the central directory stays consistent.
type Sink struct {
	mu     sync.Mutex
	reader imgfs.Reader
	log    *logging.Logger

	zw        *zip.Writer
	out       *os.File
	prev      *zip.ReadCloser // non-nil when appending to an existing archive
	finalPath string
	tmpPath   string // non-empty when appending; promoted on Close
	closed    bool

	fileErrors int
}

// AbsorbResult reports what one Absorb call wrote.
type AbsorbResult struct {
	Files   int // files written to the archive
	Skipped int // files or subdirectories that could not be read
}

// OpenSink opens the destination archive. If path already holds a readable
// zip the existing entries are carried over, so a rerun appends to previous
// output instead of clobbering it. The rewrite goes through a temp file that
// replaces the original only on Close.
func OpenSink(path string, reader imgfs.Reader, log *logging.Logger) (*Sink, error) {
	s := &Sink{reader: reader, log: log, finalPath: path}

	if _, err := os.Stat(path); err == nil {
		prev, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("%w: existing file %s is not a readable archive: %v", ErrArchiveOpen, path, err)
		}
		s.prev = prev
		s.tmpPath = path + ".partial"
		out, err := os.Create(s.tmpPath)
		if err != nil {
			prev.Close()
			return nil, fmt.Errorf("%w: %v", ErrArchiveOpen, err)
		}
		s.out = out
		s.zw = newZipWriter(out)
		for _, f := range prev.File {
			if err := s.zw.Copy(f); err != nil {
				s.discard()
				return nil, fmt.Errorf("%w: carrying over entry %s: %v", ErrArchiveOpen, f.Name, err)
			}
		}
		return s, nil
	}

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveOpen, err)
	}
	s.out = out
	s.zw = newZipWriter(out)
	return s, nil
}

// newZipWriter builds a zip writer with klauspost deflate as the compressor.
func newZipWriter(w io.Writer) *zip.Writer {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	return zw
}

// Absorb writes every file under dir into the archive. Entry names are
// relative to dir's parent, so the matched directory's own name is the top
// component inside the archive. Unreadable files and subdirectories are
// logged, counted, and skipped; the error return is reserved for dir itself
// being unreadable.
func (s *Sink) Absorb(dir imgfs.Path) (AbsorbResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res AbsorbResult
	if s.closed {
		return res, ErrSinkClosed
	}

	base := dir.Parent()
	visited := map[string]bool{dir.String(): true}
	stack := []imgfs.Path{dir}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := s.reader.ReadDir(cur.String())
		if err != nil {
			// The matched directory itself being dead is the worker's
			// failure; deeper damage only skips that subtree.
			if cur.String() == dir.String() {
				return res, fmt.Errorf("reading matched directory %s: %w", dir.String(), err)
			}
			res.Skipped++
			s.log.Warn("cannot read subdirectory, entries skipped",
				zap.String("path", cur.String()),
				zap.Error(err))
			continue
		}
		for _, entry := range entries {
			if entry.Name == "." || entry.Name == ".." {
				continue
			}
			child := cur.Child(entry.Name)
			switch entry.Type {
			case imgfs.TypeDir:
				// Same cycle guard as the scan: a looped directory chain in
				// a damaged image would otherwise mint fresh paths forever,
				// and this walk holds the sink mutex.
				if visited[child.String()] {
					continue
				}
				if child.Depth() > maxScanDepth {
					res.Skipped++
					s.log.Warn("directory deeper than scan limit, possible cycle in image",
						zap.String("path", child.String()))
					continue
				}
				visited[child.String()] = true
				stack = append(stack, child)
			case imgfs.TypeFile:
				if err := s.writeFile(child, base); err != nil {
					res.Skipped++
					s.fileErrors++
					s.log.Warn("cannot archive file, skipped",
						zap.String("path", child.String()),
						zap.Error(err))
					continue
				}
				res.Files++
			}
		}
	}
	return res, nil
}

// writeFile copies one file from the image into the archive. Caller holds mu.
func (s *Sink) writeFile(file, base imgfs.Path) error {
	src, err := s.reader.OpenFile(file.String())
	if err != nil {
		return err
	}
	defer src.Close()

	name := archiveName(file, base)
	w, err := s.zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		return err
	}
	return nil
}

// FileErrors returns the per-file failures counted across all Absorb calls.
func (s *Sink) FileErrors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileErrors
}

// Close finishes the archive. When appending, the rewritten temp file
// replaces the original here, after the central directory is flushed.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.zw.Close(); err != nil {
		s.discardLocked()
		return err
	}
	if err := s.out.Close(); err != nil {
		s.discardLocked()
		return err
	}
	if s.prev != nil {
		s.prev.Close()
		s.prev = nil
	}
	if s.tmpPath != "" {
		if err := os.Rename(s.tmpPath, s.finalPath); err != nil {
			return err
		}
		s.tmpPath = ""
	}
	return nil
}

func (s *Sink) discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardLocked()
}

// discardLocked abandons a partially written archive. Caller holds mu.
func (s *Sink) discardLocked() {
	s.closed = true
	if s.out != nil {
		s.out.Close()
	}
	if s.prev != nil {
		s.prev.Close()
		s.prev = nil
	}
	if s.tmpPath != "" {
		os.Remove(s.tmpPath)
		s.tmpPath = ""
	}
}

// archiveName renders file's path relative to base using forward slashes,
// the separator zip mandates.
func archiveName(file, base imgfs.Path) string {
	segs := file.Segments()
	skip := base.Depth()
	return gopath.Join(segs[skip:]...)
}
