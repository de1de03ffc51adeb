// Package icpc builds inverted-coaxial point-contact germanium
// crystals from their JSON shape descriptions. A crystal is a solid of
// revolution: the JSON parameters are walked into a closed r-z profile
// which becomes a generic polycone solid plus a logical volume tagged
// as a germanium sensitive detector.
package icpc

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/legend-exp/legendgeom/geom"
)

// Spec is a crystal shape description as shipped in detector metadata
// JSON files. Only the fields used for construction are decoded;
// files may carry additional metadata.
type Spec struct {
	DetName  string   `json:"det_name"`
	Geometry Geometry `json:"geometry"`
}

// Geometry holds the crystal dimensions. All lengths are millimeters.
type Geometry struct {
	Height float64 `json:"height_in_mm"`
	Radius float64 `json:"radius_in_mm"`
	Well   Well    `json:"well"`
	Groove Groove  `json:"groove"`
	Taper  Taper   `json:"taper"`
}

// Well is the borehole. Gap is the germanium thickness left between
// the well bottom and the contact face.
type Well struct {
	Gap    float64 `json:"gap_in_mm"`
	Radius float64 `json:"radius_in_mm"`
}

// Groove is the ring cut into the contact face around the point
// contact.
type Groove struct {
	OuterRadius float64 `json:"outer_radius_in_mm"`
	Depth       float64 `json:"depth_in_mm"`
	Width       float64 `json:"width_in_mm"`
}

type Taper struct {
	Top    TopTaper    `json:"top"`
	Bottom BottomTaper `json:"bottom"`
}

type TopTaper struct {
	Inner Cut `json:"inner"`
	Outer Cut `json:"outer"`
}

type BottomTaper struct {
	Outer Cut `json:"outer"`
}

// Cut is one taper: a conical cut of the given height whose wall
// leans by the given angle from the crystal axis.
type Cut struct {
	Angle  float64 `json:"angle_in_deg"`
	Height float64 `json:"height_in_mm"`
}

// Load reads and parses a crystal shape JSON file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading crystal shape: %w", err)
	}
	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing crystal shape %s: %w", path, err)
	}
	return &spec, nil
}

// Validate checks that the shape parameters describe a buildable
// crystal.
func (s *Spec) Validate() error {
	if s.DetName == "" {
		return fmt.Errorf("crystal shape: det_name is required")
	}
	g := s.Geometry
	if g.Height <= 0 || g.Radius <= 0 {
		return fmt.Errorf("crystal %s: height and radius must be positive, got %g and %g", s.DetName, g.Height, g.Radius)
	}
	if g.Well.Radius < 0 {
		return fmt.Errorf("crystal %s: well radius must be non-negative, got %g", s.DetName, g.Well.Radius)
	}
	if g.Well.Radius >= g.Radius {
		return fmt.Errorf("crystal %s: well radius %g must stay inside crystal radius %g",
			s.DetName, g.Well.Radius, g.Radius)
	}
	if g.Well.Gap <= 0 || g.Well.Gap >= g.Height {
		return fmt.Errorf("crystal %s: well gap must be in (0, height), got %g", s.DetName, g.Well.Gap)
	}
	if g.Groove.Width <= 0 || g.Groove.OuterRadius <= g.Groove.Width {
		return fmt.Errorf("crystal %s: groove needs 0 < width < outer radius, got width=%g outer=%g",
			s.DetName, g.Groove.Width, g.Groove.OuterRadius)
	}
	if g.Groove.OuterRadius >= g.Radius {
		return fmt.Errorf("crystal %s: groove outer radius %g must stay inside crystal radius %g",
			s.DetName, g.Groove.OuterRadius, g.Radius)
	}
	if g.Groove.Depth < 0 || g.Groove.Depth >= g.Height {
		return fmt.Errorf("crystal %s: groove depth must be in [0, height), got %g", s.DetName, g.Groove.Depth)
	}
	for _, c := range []struct {
		name string
		cut  Cut
	}{
		{"taper.top.inner", s.Geometry.Taper.Top.Inner},
		{"taper.top.outer", s.Geometry.Taper.Top.Outer},
		{"taper.bottom.outer", s.Geometry.Taper.Bottom.Outer},
	} {
		if c.cut.Height < 0 || c.cut.Height >= g.Height {
			return fmt.Errorf("crystal %s: %s height must be in [0, height), got %g", s.DetName, c.name, c.cut.Height)
		}
		if c.cut.Angle < 0 || c.cut.Angle >= 90 {
			return fmt.Errorf("crystal %s: %s angle must be in [0, 90) degrees, got %g", s.DetName, c.name, c.cut.Angle)
		}
	}
	return nil
}

// Profile walks the shape parameters into the closed r-z outline of
// the crystal, in mm. The walk starts at the well bottom and passes
// the well wall, the top face at z=0 with its inner and outer tapers,
// the outer wall, the groove cut into the contact face at z=height,
// and returns along the axis. Tapers of zero height collapse to a
// single corner point. The outline closes implicitly from the last
// point back to the first.
func (s *Spec) Profile() (r, z []float64) {
	g := s.Geometry
	h := g.Height
	wellR := g.Well.Radius

	r = append(r, wellR)
	z = append(z, h-g.Well.Gap)

	if in := g.Taper.Top.Inner; in.Height > 0 {
		step := in.Height * math.Tan(in.Angle*math.Pi/180)
		r = append(r, wellR, wellR+step)
		z = append(z, h-in.Height, 0)
	} else {
		r = append(r, wellR)
		z = append(z, 0)
	}

	if out := g.Taper.Top.Outer; out.Height > 0 {
		step := out.Height * math.Tan(out.Angle*math.Pi/180)
		r = append(r, g.Radius-step, g.Radius)
		z = append(z, 0, out.Height)
	} else {
		r = append(r, g.Radius)
		z = append(z, 0)
	}

	if bot := g.Taper.Bottom.Outer; bot.Height > 0 {
		step := bot.Height * math.Tan(bot.Angle*math.Pi/180)
		r = append(r, g.Radius, g.Radius-step)
		z = append(z, h-bot.Height, h)
	} else {
		r = append(r, g.Radius)
		z = append(z, h)
	}

	gr := g.Groove.OuterRadius
	r = append(r, gr, gr, gr-g.Groove.Width, gr-g.Groove.Width, 0, 0)
	z = append(z, h, h-g.Groove.Depth, h-g.Groove.Depth, h, h, h-g.Well.Gap)
	return r, z
}

// Build validates the spec, constructs the crystal polycone and its
// logical volume, and registers both. Names are derived from the
// detector name so several crystals can share one registry.
func Build(reg *geom.Registry, enrGe *geom.Material, spec *Spec) (*geom.LogicalVolume, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	r, z := spec.Profile()
	solid, err := geom.NewGenericPolycone(reg, "Ge-"+spec.DetName, 0, 2*math.Pi, r, z, geom.Millimeter)
	if err != nil {
		return nil, fmt.Errorf("building crystal %s: %w", spec.DetName, err)
	}
	lv, err := geom.NewLogicalVolume(reg, "GeLV-"+spec.DetName, solid, enrGe)
	if err != nil {
		return nil, fmt.Errorf("building crystal %s: %w", spec.DetName, err)
	}
	lv.AddAuxiliary(geom.Auxiliary{Type: "SensDet", Value: "GeDet"})
	return lv, nil
}

// Mass returns the crystal mass in grams from its solid capacity and
// the density of its registered material. Predefined materials carry
// no density here and yield zero.
func Mass(lv *geom.LogicalVolume) float64 {
	return lv.Solid.Capacity() * lv.Material.Density
}
