// Package main provides the appcarve command-line interface.
//
// appcarve carves application data directories out of raw storage device
// images and block devices, packing every directory whose name contains a
// configured marker into a single deflate-compressed zip archive. Discovery
// and archiving overlap: a scanner walks the image's filesystem tree while a
// pool of workers drains matched directories into the shared archive.
//
// The main binary supports multiple subcommands:
//   - extract: Scan an image and archive every marked directory
//   - volumes: List the host's block devices
//   - inspect: List the contents of a produced archive
package main
