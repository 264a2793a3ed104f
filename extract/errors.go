package extract

import "errors"

// Sentinel errors for package extract.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrSourceUnreadable means the image's root directory could not be
	// opened. Nothing is started and no archive is touched.
	ErrSourceUnreadable = errors.New("source filesystem root cannot be read")

	// ErrArchiveOpen means the destination archive could not be created or
	// reopened for appending.
	ErrArchiveOpen = errors.New("destination archive cannot be opened")

	// ErrSinkClosed is returned by Absorb after Close.
	ErrSinkClosed = errors.New("archive sink is closed")
)
