package geom

import (
	"fmt"
	"math"
)

// Solid is a named shape parameter record. Concrete solids hold the
// GDML parameters of their shape; they do not evaluate geometry beyond
// the closed-form capacity used for reporting.
type Solid interface {
	// Name returns the registry name of the solid.
	Name() string
	// Capacity returns the enclosed volume in cubic centimeters.
	Capacity() float64
}

// Box is a rectangular parallelepiped. X, Y and Z are full lengths,
// per the GDML convention.
type Box struct {
	name    string
	X, Y, Z float64
	Unit    Unit
}

// NewBox validates, registers and returns a box solid.
func NewBox(reg *Registry, name string, x, y, z float64, unit Unit) (*Box, error) {
	b := &Box{name: name, X: x, Y: y, Z: z, Unit: unit}
	if err := b.validate(); err != nil {
		return nil, err
	}
	if err := reg.addSolid(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Box) Name() string { return b.name }

func (b *Box) validate() error {
	if err := checkUnit(b.name, b.Unit); err != nil {
		return err
	}
	if b.X <= 0 || b.Y <= 0 || b.Z <= 0 {
		return fmt.Errorf("box %q: extents must be positive, got %g x %g x %g", b.name, b.X, b.Y, b.Z)
	}
	return nil
}

// Capacity returns x*y*z in cubic centimeters.
func (b *Box) Capacity() float64 {
	return b.Unit.ToCM(b.X) * b.Unit.ToCM(b.Y) * b.Unit.ToCM(b.Z)
}

// Tubs is a cylindrical section: the region between RMin and RMax over
// the full length Z, spanning DPhi radians from SPhi.
type Tubs struct {
	name       string
	RMin, RMax float64
	Z          float64
	SPhi, DPhi float64
	Unit       Unit
}

// NewTubs validates, registers and returns a tube solid.
func NewTubs(reg *Registry, name string, rmin, rmax, z, sphi, dphi float64, unit Unit) (*Tubs, error) {
	t := &Tubs{name: name, RMin: rmin, RMax: rmax, Z: z, SPhi: sphi, DPhi: dphi, Unit: unit}
	if err := t.validate(); err != nil {
		return nil, err
	}
	if err := reg.addSolid(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tubs) Name() string { return t.name }

func (t *Tubs) validate() error {
	if err := checkUnit(t.name, t.Unit); err != nil {
		return err
	}
	if t.RMin < 0 || t.RMax <= t.RMin {
		return fmt.Errorf("tube %q: need 0 <= rmin < rmax, got rmin=%g rmax=%g", t.name, t.RMin, t.RMax)
	}
	if t.Z <= 0 {
		return fmt.Errorf("tube %q: z must be positive, got %g", t.name, t.Z)
	}
	return checkPhi(t.name, t.SPhi, t.DPhi)
}

// Capacity returns the tube section volume in cubic centimeters.
func (t *Tubs) Capacity() float64 {
	rmin := t.Unit.ToCM(t.RMin)
	rmax := t.Unit.ToCM(t.RMax)
	z := t.Unit.ToCM(t.Z)
	return 0.5 * t.DPhi * (rmax*rmax - rmin*rmin) * z
}

// Cons is a conical section. Radii 1 are at -z/2, radii 2 at +z/2;
// Z is the full length.
type Cons struct {
	name         string
	RMin1, RMax1 float64
	RMin2, RMax2 float64
	Z            float64
	SPhi, DPhi   float64
	Unit         Unit
}

// NewCons validates, registers and returns a cone solid.
func NewCons(reg *Registry, name string, rmin1, rmax1, rmin2, rmax2, z, sphi, dphi float64, unit Unit) (*Cons, error) {
	c := &Cons{
		name: name,
		RMin1: rmin1, RMax1: rmax1,
		RMin2: rmin2, RMax2: rmax2,
		Z: z, SPhi: sphi, DPhi: dphi, Unit: unit,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := reg.addSolid(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cons) Name() string { return c.name }

func (c *Cons) validate() error {
	if err := checkUnit(c.name, c.Unit); err != nil {
		return err
	}
	if c.RMin1 < 0 || c.RMax1 <= c.RMin1 {
		return fmt.Errorf("cone %q: need 0 <= rmin1 < rmax1, got rmin1=%g rmax1=%g", c.name, c.RMin1, c.RMax1)
	}
	if c.RMin2 < 0 || c.RMax2 <= c.RMin2 {
		return fmt.Errorf("cone %q: need 0 <= rmin2 < rmax2, got rmin2=%g rmax2=%g", c.name, c.RMin2, c.RMax2)
	}
	if c.Z <= 0 {
		return fmt.Errorf("cone %q: z must be positive, got %g", c.name, c.Z)
	}
	return checkPhi(c.name, c.SPhi, c.DPhi)
}

// Capacity returns the cone section volume in cubic centimeters, the
// difference of the outer and inner frustum volumes scaled by the phi
// span.
func (c *Cons) Capacity() float64 {
	z := c.Unit.ToCM(c.Z)
	outer := frustumTerm(c.Unit.ToCM(c.RMax1), c.Unit.ToCM(c.RMax2))
	inner := frustumTerm(c.Unit.ToCM(c.RMin1), c.Unit.ToCM(c.RMin2))
	return c.DPhi / 2.0 * z * (outer - inner)
}

// frustumTerm is (r1^2 + r1*r2 + r2^2)/3, the radial factor of the
// conical frustum volume.
func frustumTerm(r1, r2 float64) float64 {
	return (r1*r1 + r1*r2 + r2*r2) / 3.0
}

// GenericPolycone is a solid of revolution over an ordered closed
// (r, z) profile, spanning DPhi radians from SPhi. The profile closes
// implicitly from the last point back to the first.
type GenericPolycone struct {
	name       string
	SPhi, DPhi float64
	R, Z       []float64
	Unit       Unit
}

// NewGenericPolycone validates, registers and returns a generic
// polycone solid. The r and z slices must have equal length of at
// least three points.
func NewGenericPolycone(reg *Registry, name string, sphi, dphi float64, r, z []float64, unit Unit) (*GenericPolycone, error) {
	p := &GenericPolycone{name: name, SPhi: sphi, DPhi: dphi, R: r, Z: z, Unit: unit}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := reg.addSolid(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *GenericPolycone) Name() string { return p.name }

func (p *GenericPolycone) validate() error {
	if err := checkUnit(p.name, p.Unit); err != nil {
		return err
	}
	if len(p.R) != len(p.Z) {
		return fmt.Errorf("polycone %q: r and z lengths differ, %d vs %d", p.name, len(p.R), len(p.Z))
	}
	if len(p.R) < 3 {
		return fmt.Errorf("polycone %q: need at least 3 profile points, got %d", p.name, len(p.R))
	}
	for i, r := range p.R {
		if r < 0 {
			return fmt.Errorf("polycone %q: point %d has negative radius %g", p.name, i, r)
		}
	}
	return checkPhi(p.name, p.SPhi, p.DPhi)
}

// Capacity returns the revolved profile volume in cubic centimeters.
// Each profile segment contributes dz*(r1^2 + r1*r2 + r2^2)/3 to the
// contour integral of r^2 dz; the closing segment from the last point
// to the first is included. The sign of the sum depends only on the
// winding of the profile, so the absolute value is taken.
func (p *GenericPolycone) Capacity() float64 {
	sum := 0.0
	n := len(p.R)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		r1 := p.Unit.ToCM(p.R[i])
		r2 := p.Unit.ToCM(p.R[j])
		dz := p.Unit.ToCM(p.Z[j]) - p.Unit.ToCM(p.Z[i])
		sum += dz * frustumTerm(r1, r2)
	}
	return math.Abs(sum) * p.DPhi / 2.0
}

func checkPhi(solid string, sphi, dphi float64) error {
	if dphi <= 0 || dphi > 2*math.Pi+1e-9 {
		return fmt.Errorf("solid %q: deltaphi must be in (0, 2pi], got %g", solid, dphi)
	}
	if sphi < 0 || sphi >= 2*math.Pi {
		return fmt.Errorf("solid %q: startphi must be in [0, 2pi), got %g", solid, sphi)
	}
	return nil
}
