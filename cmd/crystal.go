package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/legend-exp/legendgeom/geom"
	"github.com/legend-exp/legendgeom/geom/gdml"
	"github.com/legend-exp/legendgeom/legend"
	"github.com/legend-exp/legendgeom/legend/icpc"
)

var (
	crystalFile string // Crystal shape JSON file
	crystalOut  string // Optional GDML test stand output path
)

// crystalCmd builds one crystal from its shape file, reports its
// profile and bulk numbers, and optionally writes a test stand GDML
var crystalCmd = &cobra.Command{
	Use:   "crystal",
	Short: "Inspect a single crystal shape file",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if crystalFile == "" {
			logrus.Fatalf("Crystal shape file not provided.")
		}
		spec, err := icpc.Load(crystalFile)
		if err != nil {
			logrus.Fatalf("Loading crystal failed: %v", err)
		}

		reg := geom.NewRegistry()
		mats, err := legend.BuildMaterials(reg)
		if err != nil {
			logrus.Fatalf("Building materials failed: %v", err)
		}
		lv, err := icpc.Build(reg, mats.EnrGe, spec)
		if err != nil {
			logrus.Fatalf("Building crystal failed: %v", err)
		}

		printCrystalReport(os.Stdout, spec, lv)

		if crystalOut != "" {
			if err := writeCrystalStand(crystalOut, reg, mats, lv, spec.DetName); err != nil {
				logrus.Fatalf("Writing GDML failed: %v", err)
			}
			fmt.Printf("GDML written to : %s\n", crystalOut)
		}
	},
}

// printCrystalReport prints the crystal dimensions, bulk numbers and
// the r-z profile walked from the shape file.
func printCrystalReport(w io.Writer, spec *icpc.Spec, lv *geom.LogicalVolume) {
	fmt.Fprintln(w, "=== Crystal Report ===")
	fmt.Fprintf(w, "Detector        : %s\n", spec.DetName)
	fmt.Fprintf(w, "Height          : %.2f mm\n", spec.Geometry.Height)
	fmt.Fprintf(w, "Radius          : %.2f mm\n", spec.Geometry.Radius)
	fmt.Fprintf(w, "Capacity        : %.2f cm3\n", lv.Solid.Capacity())
	fmt.Fprintf(w, "Mass            : %.1f g\n", icpc.Mass(lv))

	r, z := spec.Profile()
	fmt.Fprintf(w, "Profile points  : %d\n", len(r))
	for i := range r {
		fmt.Fprintf(w, "  r %7.2f  z %7.2f\n", r[i], z[i])
	}
}

// writeCrystalStand exports the crystal alone at the center of a small
// vacuum world box, for standalone simulation studies.
func writeCrystalStand(path string, reg *geom.Registry, mats *legend.MaterialSet, lv *geom.LogicalVolume, name string) error {
	ws, err := geom.NewBox(reg, "ws", 1, 1, 1, geom.Meter)
	if err != nil {
		return err
	}
	worldLV, err := geom.NewLogicalVolume(reg, "worldLV", ws, mats.Vacuum)
	if err != nil {
		return err
	}
	if _, err := geom.NewPhysicalVolume(reg, "GePV-"+name, lv, worldLV, geom.Rotation{}, r3.Vec{}, 0); err != nil {
		return err
	}
	if err := reg.SetWorld(worldLV); err != nil {
		return err
	}
	return gdml.Write(path, reg)
}

// init sets up the crystal flags
func init() {
	crystalCmd.Flags().StringVar(&crystalFile, "file", "", "Crystal shape JSON file")
	crystalCmd.Flags().StringVar(&crystalOut, "gdml", "", "Write a single-crystal test stand GDML to this path")

	rootCmd.AddCommand(crystalCmd)
}
