package gdml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/legend-exp/legendgeom/geom"
)

const (
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://service-spi.web.cern.ch/service-spi/app/releases/GDML/schema/gdml.xsd"
)

// Write serializes the registry to a GDML file at path. The registry
// must have a world volume set.
func Write(path string, reg *geom.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Encode(f, reg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes the registry as an indented GDML document to w.
func Encode(w io.Writer, reg *geom.Registry) error {
	doc, err := buildDocument(reg)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding GDML: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func buildDocument(reg *geom.Registry) (*document, error) {
	world := reg.World()
	if world == nil {
		return nil, fmt.Errorf("registry has no world volume")
	}

	doc := &document{XSI: xsiNamespace, Schema: schemaLocation}
	if err := fillMaterials(&doc.Materials, reg); err != nil {
		return nil, err
	}
	if err := fillSolids(&doc.Solids, reg); err != nil {
		return nil, err
	}
	ordered, err := orderedVolumes(reg, world)
	if err != nil {
		return nil, err
	}
	for _, lv := range ordered {
		doc.Structure.Volumes = append(doc.Structure.Volumes, makeVolume(lv))
	}
	doc.Setup = setup{Name: "Default", Version: "1.0", World: ref{Ref: world.Name}}
	return doc, nil
}

// fillMaterials emits isotopes, then elements, then composite
// materials, each in registration order. Compositions are validated
// here so an inconsistent registry cannot produce a file.
func fillMaterials(dst *materials, reg *geom.Registry) error {
	for _, name := range reg.IsotopeNames() {
		iso, _ := reg.Isotope(name)
		dst.Isotopes = append(dst.Isotopes, isotope{
			Name: iso.Name,
			Z:    iso.Z,
			N:    iso.N,
			Atom: atom{Unit: "g/mole", Value: iso.MolarMass},
		})
	}
	for _, name := range reg.ElementNames() {
		el, _ := reg.Element(name)
		if err := el.Validate(); err != nil {
			return fmt.Errorf("exporting element: %w", err)
		}
		xe := element{Name: el.Name, Formula: el.Symbol}
		for _, f := range el.Isotopes {
			xe.Fractions = append(xe.Fractions, fraction{N: f.Abundance, Ref: f.Isotope.Name})
		}
		dst.Elements = append(dst.Elements, xe)
	}
	for _, name := range reg.MaterialNames() {
		m, _ := reg.Material(name)
		if m.Predefined {
			// NIST materials resolve inside Geant4, nothing to emit
			continue
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("exporting material: %w", err)
		}
		xm := composite{Name: m.Name, D: density{Unit: "g/cm3", Value: m.Density}}
		for _, f := range m.Materials {
			xm.Fractions = append(xm.Fractions, fraction{N: f.Fraction, Ref: f.Material.Name})
		}
		for _, f := range m.Elements {
			xm.Fractions = append(xm.Fractions, fraction{N: f.Fraction, Ref: f.Element.Name})
		}
		dst.Materials = append(dst.Materials, xm)
	}
	return nil
}

func fillSolids(dst *solids, reg *geom.Registry) error {
	for _, name := range reg.SolidNames() {
		s, _ := reg.Solid(name)
		switch v := s.(type) {
		case *geom.Box:
			dst.items = append(dst.items, box{
				Name:  v.Name(),
				X:     v.X,
				Y:     v.Y,
				Z:     v.Z,
				Lunit: string(v.Unit),
			})
		case *geom.Tubs:
			dst.items = append(dst.items, tube{
				Name:     v.Name(),
				RMin:     v.RMin,
				RMax:     v.RMax,
				Z:        v.Z,
				StartPhi: v.SPhi,
				DeltaPhi: v.DPhi,
				Lunit:    string(v.Unit),
				Aunit:    "rad",
			})
		case *geom.Cons:
			dst.items = append(dst.items, cone{
				Name:     v.Name(),
				RMin1:    v.RMin1,
				RMax1:    v.RMax1,
				RMin2:    v.RMin2,
				RMax2:    v.RMax2,
				Z:        v.Z,
				StartPhi: v.SPhi,
				DeltaPhi: v.DPhi,
				Lunit:    string(v.Unit),
				Aunit:    "rad",
			})
		case *geom.GenericPolycone:
			gp := genericPolycone{
				Name:     v.Name(),
				StartPhi: v.SPhi,
				DeltaPhi: v.DPhi,
				Lunit:    string(v.Unit),
				Aunit:    "rad",
			}
			for i := range v.R {
				gp.Points = append(gp.Points, rzPoint{R: v.R[i], Z: v.Z[i]})
			}
			dst.items = append(dst.items, gp)
		default:
			return fmt.Errorf("solid %q: no GDML mapping for %T", s.Name(), s)
		}
	}
	return nil
}

// orderedVolumes walks the placement tree depth first and returns
// every registered volume with daughters before mothers: the world
// subtree first, then volumes no placement reaches, in registration
// order. A volume that contains itself through a placement chain is
// an error.
func orderedVolumes(reg *geom.Registry, world *geom.LogicalVolume) ([]*geom.LogicalVolume, error) {
	const (
		visiting = 1
		done     = 2
	)
	state := map[*geom.LogicalVolume]int{}
	var out []*geom.LogicalVolume

	var visit func(lv *geom.LogicalVolume) error
	visit = func(lv *geom.LogicalVolume) error {
		switch state[lv] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("volume %q contains itself through its daughters", lv.Name)
		}
		state[lv] = visiting
		for _, pv := range lv.Daughters() {
			if err := visit(pv.Volume); err != nil {
				return err
			}
		}
		state[lv] = done
		out = append(out, lv)
		return nil
	}
	if err := visit(world); err != nil {
		return nil, err
	}
	for _, name := range reg.VolumeNames() {
		lv, _ := reg.Volume(name)
		if err := visit(lv); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func makeVolume(lv *geom.LogicalVolume) volume {
	v := volume{
		Name:        lv.Name,
		MaterialRef: ref{Ref: lv.Material.Name},
		SolidRef:    ref{Ref: lv.Solid.Name()},
	}
	for _, pv := range lv.Daughters() {
		xpv := physvol{
			Name:       pv.Name,
			CopyNumber: pv.CopyNumber,
			VolumeRef:  ref{Ref: pv.Volume.Name},
			Position: &position{
				Name: pv.Name + "_pos",
				X:    pv.Position.X,
				Y:    pv.Position.Y,
				Z:    pv.Position.Z,
				Unit: "mm",
			},
		}
		if !pv.Rotation.IsZero() {
			xpv.Rotation = &rotation{
				Name: pv.Name + "_rot",
				X:    pv.Rotation.X,
				Y:    pv.Rotation.Y,
				Z:    pv.Rotation.Z,
				Unit: "rad",
			}
		}
		v.PhysVols = append(v.PhysVols, xpv)
	}
	for _, a := range lv.Auxiliaries() {
		v.Auxiliary = append(v.Auxiliary, auxiliary{Type: a.Type, Value: a.Value})
	}
	return v
}
