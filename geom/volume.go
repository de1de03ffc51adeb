package geom

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rotation is a passive Tait-Bryan rotation about the x, y and z axes,
// in radians. The zero value is no rotation.
type Rotation struct {
	X, Y, Z float64
}

// IsZero reports whether the rotation is the identity.
func (r Rotation) IsZero() bool {
	return r.X == 0 && r.Y == 0 && r.Z == 0
}

// Auxiliary is a (type, value) annotation attached to a logical
// volume, e.g. SensDet tags marking sensitive detectors.
type Auxiliary struct {
	Type  string
	Value string
}

// LogicalVolume binds a solid to a material under a unique name.
// Daughter placements are appended by NewPhysicalVolume.
type LogicalVolume struct {
	Name     string
	Solid    Solid
	Material *Material

	daughters []*PhysicalVolume
	aux       []Auxiliary
}

// NewLogicalVolume validates, registers and returns a logical volume.
// The solid and material must already be registered.
func NewLogicalVolume(reg *Registry, name string, solid Solid, material *Material) (*LogicalVolume, error) {
	if solid == nil {
		return nil, fmt.Errorf("volume %q: nil solid", name)
	}
	if material == nil {
		return nil, fmt.Errorf("volume %q: nil material", name)
	}
	if !reg.hasSolid(solid.Name()) {
		return nil, fmt.Errorf("volume %q: solid %q is not registered", name, solid.Name())
	}
	if _, ok := reg.Material(material.Name); !ok {
		return nil, fmt.Errorf("volume %q: material %q is not registered", name, material.Name)
	}
	lv := &LogicalVolume{Name: name, Solid: solid, Material: material}
	if err := reg.addVolume(lv); err != nil {
		return nil, err
	}
	return lv, nil
}

// AddAuxiliary attaches an annotation to the volume.
func (lv *LogicalVolume) AddAuxiliary(aux Auxiliary) {
	lv.aux = append(lv.aux, aux)
}

// Auxiliaries returns the attached annotations in attachment order.
func (lv *LogicalVolume) Auxiliaries() []Auxiliary {
	return lv.aux
}

// Daughters returns the daughter placements in placement order.
func (lv *LogicalVolume) Daughters() []*PhysicalVolume {
	return lv.daughters
}

// PhysicalVolume is a named placement of a logical volume inside a
// mother volume. Position is in millimeters.
type PhysicalVolume struct {
	Name       string
	Volume     *LogicalVolume
	Mother     *LogicalVolume
	Rotation   Rotation
	Position   r3.Vec
	CopyNumber int
}

// NewPhysicalVolume validates, registers and returns a placement, and
// appends it to the mother's daughter list. Both volumes must already
// be registered.
func NewPhysicalVolume(reg *Registry, name string, volume, mother *LogicalVolume, rot Rotation, pos r3.Vec, copyNumber int) (*PhysicalVolume, error) {
	if volume == nil || mother == nil {
		return nil, fmt.Errorf("placement %q: nil volume or mother", name)
	}
	if _, ok := reg.Volume(volume.Name); !ok {
		return nil, fmt.Errorf("placement %q: volume %q is not registered", name, volume.Name)
	}
	if _, ok := reg.Volume(mother.Name); !ok {
		return nil, fmt.Errorf("placement %q: mother %q is not registered", name, mother.Name)
	}
	if volume == mother {
		return nil, fmt.Errorf("placement %q: volume %q cannot contain itself", name, volume.Name)
	}
	if copyNumber < 0 {
		return nil, fmt.Errorf("placement %q: copy number must be >= 0, got %d", name, copyNumber)
	}
	pv := &PhysicalVolume{
		Name:       name,
		Volume:     volume,
		Mother:     mother,
		Rotation:   rot,
		Position:   pos,
		CopyNumber: copyNumber,
	}
	if err := reg.addPlacement(pv); err != nil {
		return nil, err
	}
	mother.daughters = append(mother.daughters, pv)
	return pv, nil
}
