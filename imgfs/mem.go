package imgfs

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// MemReader is an in-memory Reader. It exists so the extraction pipeline can
// be exercised against an arbitrary tree without a disk image, and it backs
// most of the package tests. Directories spring into existence as parents of
// whatever is added.
type MemReader struct {
	mu        sync.RWMutex
	files     map[string][]byte
	dirs      map[string]bool
	failDirs  map[string]error
	failFiles map[string]error
}

// NewMemReader returns an empty in-memory tree containing only the root.
func NewMemReader() *MemReader {
	return &MemReader{
		files:     make(map[string][]byte),
		dirs:      map[string]bool{"/": true},
		failDirs:  make(map[string]error),
		failFiles: make(map[string]error),
	}
}

// AddFile stores a file, creating all parent directories.
func (m *MemReader) AddFile(p string, data []byte) {
	p = normalize(p)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = append([]byte(nil), data...)
	m.addParents(p)
}

// AddDir creates an (optionally empty) directory and its parents.
func (m *MemReader) AddDir(p string) {
	p = normalize(p)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[p] = true
	m.addParents(p)
}

// FailDir makes future ReadDir calls on p return err.
func (m *MemReader) FailDir(p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failDirs[normalize(p)] = err
}

// FailFile makes future OpenFile calls on p return err.
func (m *MemReader) FailFile(p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failFiles[normalize(p)] = err
}

// ReadDir lists the immediate children of p in lexical order.
func (m *MemReader) ReadDir(p string) ([]DirEntry, error) {
	p = normalize(p)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.failDirs[p]; ok {
		return nil, err
	}
	if !m.dirs[p] {
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: fs.ErrNotExist}
	}

	seen := make(map[string]DirEntry)
	for fp := range m.files {
		if name, ok := childName(p, fp); ok {
			seen[name] = DirEntry{Name: name, Type: TypeFile}
		}
	}
	for dp := range m.dirs {
		if name, ok := childName(p, dp); ok {
			seen[name] = DirEntry{Name: name, Type: TypeDir}
		}
	}

	entries := make([]DirEntry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// OpenFile opens a stored file for reading.
func (m *MemReader) OpenFile(p string) (io.ReadCloser, error) {
	p = normalize(p)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.failFiles[p]; ok {
		return nil, err
	}
	data, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// addParents registers every ancestor of p as a directory. Caller holds mu.
func (m *MemReader) addParents(p string) {
	for dir := path.Dir(p); ; dir = path.Dir(dir) {
		m.dirs[dir] = true
		if dir == "/" {
			return
		}
	}
}

func normalize(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// childName returns the entry name if full is a direct child of dir.
func childName(dir, full string) (string, bool) {
	if full == dir {
		return "", false
	}
	prefix := dir
	if prefix != "/" {
		prefix += "/"
	}
	rest, ok := strings.CutPrefix(full, prefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
