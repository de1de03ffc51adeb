package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/legend-exp/legendgeom/legend"
)

var volumeName string // Logical volume whose daughters are listed

// inspectCmd builds the geometry and enumerates it on stdout instead
// of writing GDML
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Build the geometry and list its volumes and placements",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		spec, err := setupFromFlags(cmd)
		if err != nil {
			logrus.Fatalf("Invalid setup spec: %v", err)
		}
		setup, err := legend.Build(spec)
		if err != nil {
			logrus.Fatalf("Building geometry failed: %v", err)
		}
		if err := printInspection(os.Stdout, setup, volumeName); err != nil {
			logrus.Fatalf("Inspection failed: %v", err)
		}
	},
}

// printInspection lists every logical volume, every placement, then
// the daughters of the chosen volume with copy number and position.
func printInspection(w io.Writer, setup *legend.Setup, volume string) error {
	volumes := setup.Registry.VolumeNames()
	fmt.Fprintf(w, "=== Logical Volumes (%d) ===\n", len(volumes))
	for _, name := range volumes {
		fmt.Fprintln(w, name)
	}

	placements := setup.Registry.PlacementNames()
	fmt.Fprintf(w, "=== Placements (%d) ===\n", len(placements))
	for _, name := range placements {
		fmt.Fprintln(w, name)
	}

	lv, ok := setup.Registry.Volume(volume)
	if !ok {
		return fmt.Errorf("no logical volume %q in the geometry", volume)
	}
	daughters := lv.Daughters()
	fmt.Fprintf(w, "=== Daughters of %s (%d) ===\n", volume, len(daughters))
	for _, pv := range daughters {
		fmt.Fprintf(w, "%-16s copy %4d  at (%8.1f, %8.1f, %8.1f) mm\n",
			pv.Name, pv.CopyNumber, pv.Position.X, pv.Position.Y, pv.Position.Z)
	}
	return nil
}

// init sets up the inspect flags
func init() {
	inspectCmd.Flags().StringVar(&hall, "hall", "lngs", "Underground hall (lngs, snolab)")
	inspectCmd.Flags().BoolVar(&filled, "filled", false, "Fill every crystal slot with the ideal template")
	inspectCmd.Flags().StringVar(&detectors, "detectors", "", "Detector configuration CSV")
	inspectCmd.Flags().StringVar(&specFile, "config", "", "Setup spec YAML file")
	inspectCmd.Flags().StringVar(&volumeName, "volume", "ULArLV0", "Logical volume whose daughters are listed")

	rootCmd.AddCommand(inspectCmd)
}
