package imgfs

import "errors"

// ErrUnsupportedPlatform is returned by ListVolumes on platforms without a
// host volume inventory.
var ErrUnsupportedPlatform = errors.New("volume inventory is not supported on this platform")

// Volume describes one block device known to the host.
type Volume struct {
	Device    string // device path, e.g. /dev/sda1
	SizeBytes int64
}

// ListVolumes enumerates the host's block devices. The result is advisory:
// any entry (or any image file) can be handed to OpenImage.
func ListVolumes() ([]Volume, error) {
	return listVolumes()
}
