package legend

import (
	"fmt"
	"io"
	"os"

	"github.com/legend-exp/legendgeom/legend/icpc"
)

// SetupSummary aggregates statistics from a built Setup.
type SetupSummary struct {
	Hall        Hall
	World       string
	Materials   int
	Solids      int
	Volumes     int
	Placements  int
	Crystals    int
	CrystalMass float64 // total germanium mass in kg
}

// Summary computes aggregate statistics for the built setup.
func (s *Setup) Summary() *SetupSummary {
	sum := &SetupSummary{Hall: s.Hall}
	if s.Registry != nil {
		sum.Materials = len(s.Registry.MaterialNames())
		sum.Solids = len(s.Registry.SolidNames())
		sum.Volumes = len(s.Registry.VolumeNames())
		sum.Placements = len(s.Registry.PlacementNames())
	}
	if s.World != nil {
		sum.World = s.World.Name
	}
	sum.Crystals = len(s.Crystals)
	for _, pv := range s.Crystals {
		sum.CrystalMass += icpc.Mass(pv.Volume) / 1000
	}
	return sum
}

// Fprint writes the human-readable end-of-build report to w.
func (s *SetupSummary) Fprint(w io.Writer) {
	fmt.Fprintln(w, "=== Geometry Summary ===")
	fmt.Fprintf(w, "Hall            : %s\n", s.Hall)
	fmt.Fprintf(w, "World volume    : %s\n", s.World)
	fmt.Fprintf(w, "Materials       : %d\n", s.Materials)
	fmt.Fprintf(w, "Solids          : %d\n", s.Solids)
	fmt.Fprintf(w, "Logical volumes : %d\n", s.Volumes)
	fmt.Fprintf(w, "Placements      : %d\n", s.Placements)
	if s.Crystals > 0 {
		fmt.Fprintf(w, "Crystals        : %d\n", s.Crystals)
		fmt.Fprintf(w, "Germanium mass  : %.2f kg\n", s.CrystalMass)
	}
}

// Print writes the report to stdout.
func (s *SetupSummary) Print() {
	s.Fprint(os.Stdout)
}
