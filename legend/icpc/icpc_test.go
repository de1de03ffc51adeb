package icpc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legend-exp/legendgeom/geom"
)

func validSpec() *Spec {
	return &Spec{
		DetName: "T00000A",
		Geometry: Geometry{
			Height: 100,
			Radius: 40,
			Well:   Well{Gap: 10, Radius: 5},
			Groove: Groove{OuterRadius: 15, Depth: 2.5, Width: 3.5},
			Taper: Taper{
				Top: TopTaper{
					Inner: Cut{Angle: 0, Height: 8},
					Outer: Cut{Angle: 45, Height: 4},
				},
				Bottom: BottomTaper{Outer: Cut{Angle: 30, Height: 6}},
			},
		},
	}
}

func TestLoad_ReadsShapeFile(t *testing.T) {
	spec, err := Load(filepath.Join("testdata", "V09372A.json"))
	require.NoError(t, err)

	assert.Equal(t, "V09372A", spec.DetName)
	assert.Equal(t, 94.1, spec.Geometry.Height)
	assert.Equal(t, 36.75, spec.Geometry.Radius)
	assert.Equal(t, 12.0, spec.Geometry.Well.Gap)
	assert.Equal(t, 5.25, spec.Geometry.Well.Radius)
	assert.Equal(t, 12.0, spec.Geometry.Groove.OuterRadius)
	assert.Equal(t, 45.0, spec.Geometry.Taper.Top.Outer.Angle)
	assert.Equal(t, 2.0, spec.Geometry.Taper.Bottom.Outer.Height)
	require.NoError(t, spec.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing crystal shape")
}

func TestProfile_AllTapers(t *testing.T) {
	r, z := validSpec().Profile()

	wantR := []float64{5, 5, 5, 36, 40, 40, 36.535898384862245, 15, 15, 11.5, 11.5, 0, 0}
	wantZ := []float64{90, 92, 0, 0, 4, 94, 100, 100, 97.5, 97.5, 100, 100, 90}
	require.Len(t, r, len(wantR))
	require.Len(t, z, len(wantZ))
	assert.InDeltaSlice(t, wantR, r, 1e-9)
	assert.InDeltaSlice(t, wantZ, z, 1e-9)
}

func TestProfile_ZeroTapersCollapse(t *testing.T) {
	spec := validSpec()
	spec.Geometry.Taper = Taper{}
	r, z := spec.Profile()

	assert.Equal(t, []float64{5, 5, 40, 40, 15, 15, 11.5, 11.5, 0, 0}, r)
	assert.Equal(t, []float64{90, 0, 0, 100, 100, 97.5, 97.5, 100, 100, 90}, z)
}

func TestValidate_RejectsBadShapes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"empty name", func(s *Spec) { s.DetName = "" }},
		{"zero height", func(s *Spec) { s.Geometry.Height = 0 }},
		{"negative well radius", func(s *Spec) { s.Geometry.Well.Radius = -1 }},
		{"well radius at crystal radius", func(s *Spec) { s.Geometry.Well.Radius = s.Geometry.Radius }},
		{"well gap at height", func(s *Spec) { s.Geometry.Well.Gap = s.Geometry.Height }},
		{"groove wider than outer radius", func(s *Spec) { s.Geometry.Groove.Width = 15 }},
		{"groove outside crystal", func(s *Spec) { s.Geometry.Groove.OuterRadius = 40 }},
		{"groove deeper than crystal", func(s *Spec) { s.Geometry.Groove.Depth = 100 }},
		{"vertical taper angle", func(s *Spec) { s.Geometry.Taper.Top.Outer.Angle = 90 }},
		{"taper taller than crystal", func(s *Spec) { s.Geometry.Taper.Bottom.Outer.Height = 100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec()
			tt.mutate(spec)
			assert.Error(t, spec.Validate())
		})
	}
}

func TestBuild_RegistersNamedCrystal(t *testing.T) {
	reg := geom.NewRegistry()
	enrGe, err := geom.NewCompositeMaterial(reg, "enrGe", 5.545)
	require.NoError(t, err)

	spec, err := Load(filepath.Join("testdata", "V09372A.json"))
	require.NoError(t, err)

	lv, err := Build(reg, enrGe, spec)
	require.NoError(t, err)
	assert.Equal(t, "GeLV-V09372A", lv.Name)
	_, ok := reg.Solid("Ge-V09372A")
	assert.True(t, ok)
	require.Len(t, lv.Auxiliaries(), 1)
	assert.Equal(t, geom.Auxiliary{Type: "SensDet", Value: "GeDet"}, lv.Auxiliaries()[0])

	// capacity and mass of the realistic shape
	assert.InDelta(t, 388.545, lv.Solid.Capacity(), 0.05)
	assert.InDelta(t, 2154.48, Mass(lv), 0.3)
}

func TestBuild_SeveralCrystalsShareRegistry(t *testing.T) {
	reg := geom.NewRegistry()
	enrGe, err := geom.NewCompositeMaterial(reg, "enrGe", 5.545)
	require.NoError(t, err)

	a, err := Load(filepath.Join("testdata", "V09372A.json"))
	require.NoError(t, err)
	b, err := Load(filepath.Join("testdata", "V09372A.json"))
	require.NoError(t, err)
	b.DetName = "V09372B"

	_, err = Build(reg, enrGe, a)
	require.NoError(t, err)
	_, err = Build(reg, enrGe, b)
	require.NoError(t, err)

	assert.Equal(t, []string{"GeLV-V09372A", "GeLV-V09372B"}, reg.VolumeNames())

	// the same crystal twice collides on its registry names
	_, err = Build(reg, enrGe, a)
	assert.Error(t, err)
}

func TestBuild_InvalidSpecFails(t *testing.T) {
	reg := geom.NewRegistry()
	enrGe, err := geom.NewCompositeMaterial(reg, "enrGe", 5.545)
	require.NoError(t, err)

	spec := validSpec()
	spec.Geometry.Radius = 0
	_, err = Build(reg, enrGe, spec)
	assert.Error(t, err)
	assert.Empty(t, reg.SolidNames(), "no solid must be registered on failure")

	wide := validSpec()
	wide.Geometry.Well.Radius = 50
	_, err = Build(reg, enrGe, wide)
	assert.ErrorContains(t, err, "well radius")
	assert.Empty(t, reg.SolidNames(), "a well outside the crystal must not build")
}
