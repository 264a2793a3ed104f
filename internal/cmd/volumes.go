package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carvetools/appcarve/imgfs"
)

// NewVolumesCmd creates and returns the volumes subcommand for the appcarve
// CLI. It lists the host's block devices as candidate extraction sources.
func NewVolumesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "volumes",
		Short: "List the host's block devices",
		Long: `List the block devices the host kernel knows about.

Any listed device (or a plain image file) can be passed to
'appcarve extract --image'. Reading block devices usually requires
elevated privileges.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vols, err := imgfs.ListVolumes()
			if err != nil {
				return err
			}
			if len(vols) == 0 {
				fmt.Println("No volumes found")
				return nil
			}
			for _, v := range vols {
				fmt.Printf("%s\t%s\n", v.Device, formatSize(v.SizeBytes))
			}
			return nil
		},
	}
}

// formatSize renders a byte count in a short human-readable form.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
