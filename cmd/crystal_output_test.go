package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legend-exp/legendgeom/geom"
	"github.com/legend-exp/legendgeom/legend"
	"github.com/legend-exp/legendgeom/legend/icpc"
)

// makeCrystalSpec returns a small ICPC shape for report tests.
func makeCrystalSpec() *icpc.Spec {
	return &icpc.Spec{
		DetName: "V99999A",
		Geometry: icpc.Geometry{
			Height: 90, Radius: 35,
			Well:   icpc.Well{Gap: 12, Radius: 5},
			Groove: icpc.Groove{OuterRadius: 12, Depth: 2, Width: 3},
			Taper: icpc.Taper{
				Top:    icpc.TopTaper{Outer: icpc.Cut{Angle: 45, Height: 5}},
				Bottom: icpc.BottomTaper{Outer: icpc.Cut{Angle: 45, Height: 2}},
			},
		},
	}
}

func TestPrintCrystalReport_ListsProfileAndMass(t *testing.T) {
	// GIVEN a built crystal
	reg := geom.NewRegistry()
	mats, err := legend.BuildMaterials(reg)
	require.NoError(t, err)
	spec := makeCrystalSpec()
	lv, err := icpc.Build(reg, mats.EnrGe, spec)
	require.NoError(t, err)
	var buf bytes.Buffer

	// WHEN we print the report
	printCrystalReport(&buf, spec, lv)

	// THEN dimensions, bulk numbers and the profile are present
	output := buf.String()
	assert.Contains(t, output, "=== Crystal Report ===")
	assert.Contains(t, output, "Detector        : V99999A")
	assert.Contains(t, output, "Height          : 90.00 mm")
	assert.Contains(t, output, "Mass            :")
	assert.Contains(t, output, "Profile points  : 12")
}

func TestWriteCrystalStand_ProducesWorldWithCrystal(t *testing.T) {
	// GIVEN a built crystal
	reg := geom.NewRegistry()
	mats, err := legend.BuildMaterials(reg)
	require.NoError(t, err)
	spec := makeCrystalSpec()
	lv, err := icpc.Build(reg, mats.EnrGe, spec)
	require.NoError(t, err)

	// WHEN writing the test stand
	path := filepath.Join(t.TempDir(), "stand.gdml")
	require.NoError(t, writeCrystalStand(path, reg, mats, lv, spec.DetName))

	// THEN the GDML holds the crystal inside the vacuum world
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `<world ref="worldLV">`)
	assert.Contains(t, text, `<genericPolycone name="Ge-V99999A"`)
	assert.Contains(t, text, `<physvol name="GePV-V99999A" copynumber="0">`)
}
