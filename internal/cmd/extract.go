package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carvetools/appcarve/extract"
	"github.com/carvetools/appcarve/imgfs"
	"github.com/carvetools/appcarve/internal/config"
	"github.com/carvetools/appcarve/internal/logging"
)

// NewExtractCmd creates and returns the extract subcommand for the appcarve
// CLI. Flag defaults come from APPCARVE_* environment variables when set.
func NewExtractCmd() *cobra.Command {
	defaults, cfgErr := config.LoadOrDefault()
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring APPCARVE_* environment: %v\n", cfgErr)
	}

	var (
		image     string
		partition int
		marker    string
		workers   int
		output    string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Scan an image and archive every marked directory",
		Long: `Scan the filesystem inside a raw image or block device and write every
directory whose name contains the marker into a zip archive.

Unreadable directories and files are logged and skipped; the run still
succeeds as long as the image and the archive can be opened. Rerunning
against an existing archive appends to it, so interrupted runs can be
retried cheaply.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, image, partition, marker, workers, output, verbose, defaults)
		},
	}

	cmd.Flags().StringVarP(&image, "image", "i", "", "Path to a raw image file or block device (required)")
	cmd.Flags().IntVarP(&partition, "partition", "p", 0, "Partition to read (0 = whole image)")
	cmd.Flags().StringVarP(&marker, "marker", "m", defaults.Marker, "Substring that selects directories to archive")
	cmd.Flags().IntVarP(&workers, "workers", "w", defaults.Workers, "Number of concurrent archive workers")
	cmd.Flags().StringVarP(&output, "output", "o", defaults.Output, "Path of the output zip archive")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")

	cmd.MarkFlagRequired("image")

	return cmd
}

func runExtract(cmd *cobra.Command, image string, partition int, marker string, workers int, output string, verbose bool, defaults *config.Config) error {
	level := defaults.LogLevel
	if verbose {
		level = "debug"
	}
	log, err := logging.New(logging.Config{Level: level, Development: defaults.LogDev})
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	defer log.Sync()

	if marker == "" {
		return errors.New("marker must not be empty")
	}

	src, err := imgfs.OpenImage(image, partition)
	if err != nil {
		return fmt.Errorf("%s: %w", image, err)
	}
	defer src.Close()

	stats, err := extract.Run(cmd.Context(), extract.Config{
		Reader:      src,
		Root:        imgfs.RootPath(),
		Marker:      marker,
		Workers:     workers,
		ArchivePath: output,
	}, log)
	if err != nil {
		return err
	}

	fmt.Printf("Archived %d of %d matched directories (%d files) to %s\n",
		stats.Archived, stats.Matched, stats.FilesWritten, output)
	if stats.FailedDirs > 0 || stats.FilesSkipped > 0 || stats.UnreadableDirs > 0 {
		fmt.Printf("Skipped: %d directories failed, %d files unreadable, %d subtrees unlisted\n",
			stats.FailedDirs, stats.FilesSkipped, stats.UnreadableDirs)
	}
	return nil
}
