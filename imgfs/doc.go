// Package imgfs provides read access to filesystems inside raw storage
// images and block devices.
//
// The central abstraction is Reader, the minimal capability the extraction
// pipeline needs: list a directory, open a file. Two implementations ship
// with the package:
//   - DiskImage: parses real images and devices using go-diskfs
//   - MemReader: an in-memory tree for tests and offline experimentation
//
// Paths inside an image are represented by the immutable Path type, an
// ordered list of name segments rooted at "/".
//
// The package also exposes ListVolumes, a host block-device inventory used
// by the `appcarve volumes` command to help pick a source device.
package imgfs
