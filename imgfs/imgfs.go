package imgfs

import (
	"io"
	"strings"
)

// EntryType classifies a directory entry read from an image filesystem.
type EntryType int

const (
	TypeFile EntryType = iota
	TypeDir
	TypeOther
)

// DirEntry is a single (name, type) pair listed from a directory.
type DirEntry struct {
	Name string
	Type EntryType
}

// Reader is the capability appcarve needs from a filesystem image: list a
// directory and open a file for reading. Implementations must be safe for
// concurrent use, since the scanner and several archive workers read through
// the same Reader at once.
type Reader interface {
	ReadDir(path string) ([]DirEntry, error)
	OpenFile(path string) (io.ReadCloser, error)
}

// Path identifies a node in the image tree as an ordered list of segments.
// The zero value is the filesystem root. Paths are immutable; Child and
// Parent return copies.
type Path struct {
	segs []string
}

// RootPath returns the filesystem root.
func RootPath() Path {
	return Path{}
}

// NewPath builds a path from the given segments.
func NewPath(segs ...string) Path {
	p := Path{segs: make([]string, len(segs))}
	copy(p.segs, segs)
	return p
}

// Child returns the path extended by one segment.
func (p Path) Child(name string) Path {
	segs := make([]string, len(p.segs)+1)
	copy(segs, p.segs)
	segs[len(p.segs)] = name
	return Path{segs: segs}
}

// Parent returns the path with the last segment removed. The parent of the
// root is the root.
func (p Path) Parent() Path {
	if len(p.segs) == 0 {
		return Path{}
	}
	return NewPath(p.segs[:len(p.segs)-1]...)
}

// Base returns the last segment, or "/" for the root.
func (p Path) Base() string {
	if len(p.segs) == 0 {
		return "/"
	}
	return p.segs[len(p.segs)-1]
}

// Depth returns the number of segments.
func (p Path) Depth() int {
	return len(p.segs)
}

// IsRoot reports whether the path is the filesystem root.
func (p Path) IsRoot() bool {
	return len(p.segs) == 0
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []string {
	segs := make([]string, len(p.segs))
	copy(segs, p.segs)
	return segs
}

// String renders the path with forward slashes, rooted at "/". This is the
// form handed to Reader implementations.
func (p Path) String() string {
	return "/" + strings.Join(p.segs, "/")
}
