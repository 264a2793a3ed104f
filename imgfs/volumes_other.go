//go:build !linux

package imgfs

func listVolumes() ([]Volume, error) {
	return nil, ErrUnsupportedPlatform
}
