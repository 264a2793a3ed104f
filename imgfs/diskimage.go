package imgfs

import (
	"fmt"
	"io"
	"os"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
)

// DiskImage is a Reader backed by a raw image file or block device, parsed
// with go-diskfs. It holds the disk open for the lifetime of a run.
type DiskImage struct {
	disk *disk.Disk
	fsys filesystem.FileSystem
}

// OpenImage opens the filesystem inside a raw image file or block device.
// Partition 0 treats the whole image as one filesystem; positive values
// select an entry from the partition table.
func OpenImage(image string, partition int) (*DiskImage, error) {
	d, err := diskfs.Open(image, diskfs.WithOpenMode(diskfs.ReadOnly))
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", image, err)
	}
	fsys, err := d.GetFilesystem(partition)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("reading filesystem on partition %d of %s: %w", partition, image, err)
	}
	return &DiskImage{disk: d, fsys: fsys}, nil
}

// ReadDir lists the entries of a directory inside the image.
func (d *DiskImage) ReadDir(path string) ([]DirEntry, error) {
	infos, err := d.fsys.ReadDir(path)
	if err != nil {
		return nil, err
	}
	entries := make([]DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, DirEntry{
			Name: info.Name(),
			Type: entryType(info),
		})
	}
	return entries, nil
}

// OpenFile opens a file inside the image for reading.
func (d *DiskImage) OpenFile(path string) (io.ReadCloser, error) {
	f, err := d.fsys.OpenFile(path, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	return &imageFile{r: f}, nil
}

// Close releases the underlying disk handle.
func (d *DiskImage) Close() error {
	return d.disk.Close()
}

func entryType(info os.FileInfo) EntryType {
	switch {
	case info.IsDir():
		return TypeDir
	case info.Mode().IsRegular():
		return TypeFile
	default:
		return TypeOther
	}
}

// imageFile adapts a go-diskfs file handle to io.ReadCloser. Not every
// go-diskfs filesystem hands back a closer, so Close is best-effort.
type imageFile struct {
	r io.Reader
}

func (f *imageFile) Read(p []byte) (int, error) {
	return f.r.Read(p)
}

func (f *imageFile) Close() error {
	if c, ok := f.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
