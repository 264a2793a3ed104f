// Package cmd provides the command-line interface implementation for appcarve.
//
// This package contains all the subcommand implementations for the appcarve
// CLI tool. It uses the Cobra library for command structure and Fang for
// styled execution.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - extract: Image scanning and directory archiving
//   - volumes: Host block-device inventory
//   - inspect: Archive content listing
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Flag defaults for extract come
// from internal/config, so APPCARVE_* environment variables can preseed a
// run without repeating flags.
package cmd
