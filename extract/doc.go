// Package extract implements the concurrent extraction pipeline at the heart
// of appcarve.
//
// A Scanner walks the image's directory tree through an imgfs.Reader and
// pushes every directory whose name contains the configured marker onto an
// unbounded Queue. A fixed pool of workers drains the queue concurrently
// with the scan and hands each matched directory to the shared Sink, which
// serializes all writes into one deflate-compressed zip archive. When the
// scan finishes, the pipeline pushes exactly one sentinel task per worker,
// joins the pool, and finalizes the archive.
//
// The pipeline tolerates damage: unreadable directories and files are
// logged, counted in Stats, and skipped. Only two conditions are fatal: the
// source root cannot be listed, or the destination archive cannot be opened.
// Reruns append to an existing archive, so a failed run can be retried
// cheaply.
//
// The main entry point is Run.
package extract
