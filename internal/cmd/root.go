package cmd

import (
	"github.com/spf13/cobra"

	"github.com/carvetools/appcarve/version"
)

// NewRootCmd creates and returns the root cobra command for the appcarve CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "appcarve",
		Short: "appcarve - carve application data directories out of raw storage images",
		Long: `appcarve extracts application data directories from a raw storage device
image and packs them into a single compressed zip archive.

Directories are selected by a marker substring in their name. Discovery and
archiving run concurrently: a scanner walks the image's filesystem tree while
a pool of workers writes matched directories into the shared archive.

Use subcommands to perform different operations:
  - extract: Scan an image and archive every marked directory
  - volumes: List the host's block devices
  - inspect: List the contents of a produced archive`,
		Version: version.Full(),
	}

	groupCarving := "carving"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupCarving,
		Title: "Carving Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	extractCmd := NewExtractCmd()
	volumesCmd := NewVolumesCmd()
	inspectCmd := NewInspectCmd()

	extractCmd.GroupID = groupCarving
	volumesCmd.GroupID = groupUtilities
	inspectCmd.GroupID = groupUtilities

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(volumesCmd)
	rootCmd.AddCommand(inspectCmd)

	return rootCmd
}
