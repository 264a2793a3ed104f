//go:build linux

package imgfs

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// listVolumes reads the kernel partition table from /proc/partitions.
func listVolumes() ([]Volume, error) {
	f, err := os.Open("/proc/partitions")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parsePartitions(f)
}

// parsePartitions parses /proc/partitions content: a header line, a blank
// line, then "major minor #blocks name" rows with 1024-byte blocks.
func parsePartitions(r io.Reader) ([]Volume, error) {
	var vols []Volume
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 4 || fields[0] == "major" {
			continue
		}
		blocks, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			continue
		}
		vols = append(vols, Volume{
			Device:    "/dev/" + fields[3],
			SizeBytes: blocks * 1024,
		})
	}
	return vols, scanner.Err()
}
