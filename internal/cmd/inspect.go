package cmd

import (
	"archive/zip"
	"fmt"

	"github.com/spf13/cobra"
)

// NewInspectCmd creates and returns the inspect subcommand for the appcarve
// CLI. It lists the contents of a produced archive so a run can be verified
// without unpacking it.
func NewInspectCmd() *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:   "inspect ARCHIVE",
		Short: "List the contents of a produced archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], namesOnly)
		},
	}

	cmd.Flags().BoolVar(&namesOnly, "names-only", false, "Print entry names without sizes")

	return cmd
}

func runInspect(path string, namesOnly bool) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer zr.Close()

	var total uint64
	for _, f := range zr.File {
		if namesOnly {
			fmt.Println(f.Name)
			continue
		}
		fmt.Printf("%10d  %s\n", f.UncompressedSize64, f.Name)
		total += f.UncompressedSize64
	}
	if !namesOnly {
		fmt.Printf("Total: %d entries, %d bytes uncompressed\n", len(zr.File), total)
	}
	return nil
}
