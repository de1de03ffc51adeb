package geom

import "fmt"

// Registry collects the named objects of one geometry: isotopes,
// elements, materials, solids, logical volumes and placements, plus
// the world volume designation. Each store enforces unique names and
// preserves insertion order, so listings and the exported GDML are
// deterministic.
type Registry struct {
	isotopeNames   []string
	isotopes       map[string]*Isotope
	elementNames   []string
	elements       map[string]*Element
	materialNames  []string
	materials      map[string]*Material
	solidNames     []string
	solids         map[string]Solid
	volumeNames    []string
	volumes        map[string]*LogicalVolume
	placementNames []string
	placements     map[string]*PhysicalVolume

	world *LogicalVolume
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		isotopes:   make(map[string]*Isotope),
		elements:   make(map[string]*Element),
		materials:  make(map[string]*Material),
		solids:     make(map[string]Solid),
		volumes:    make(map[string]*LogicalVolume),
		placements: make(map[string]*PhysicalVolume),
	}
}

func (r *Registry) addIsotope(iso *Isotope) error {
	if iso.Name == "" {
		return fmt.Errorf("isotope with empty name")
	}
	if _, dup := r.isotopes[iso.Name]; dup {
		return fmt.Errorf("duplicate isotope name %q", iso.Name)
	}
	r.isotopes[iso.Name] = iso
	r.isotopeNames = append(r.isotopeNames, iso.Name)
	return nil
}

func (r *Registry) addElement(el *Element) error {
	if el.Name == "" {
		return fmt.Errorf("element with empty name")
	}
	if _, dup := r.elements[el.Name]; dup {
		return fmt.Errorf("duplicate element name %q", el.Name)
	}
	r.elements[el.Name] = el
	r.elementNames = append(r.elementNames, el.Name)
	return nil
}

func (r *Registry) addMaterial(m *Material) error {
	if m.Name == "" {
		return fmt.Errorf("material with empty name")
	}
	if _, dup := r.materials[m.Name]; dup {
		return fmt.Errorf("duplicate material name %q", m.Name)
	}
	r.materials[m.Name] = m
	r.materialNames = append(r.materialNames, m.Name)
	return nil
}

func (r *Registry) addSolid(s Solid) error {
	if s.Name() == "" {
		return fmt.Errorf("solid with empty name")
	}
	if _, dup := r.solids[s.Name()]; dup {
		return fmt.Errorf("duplicate solid name %q", s.Name())
	}
	r.solids[s.Name()] = s
	r.solidNames = append(r.solidNames, s.Name())
	return nil
}

func (r *Registry) addVolume(lv *LogicalVolume) error {
	if lv.Name == "" {
		return fmt.Errorf("volume with empty name")
	}
	if _, dup := r.volumes[lv.Name]; dup {
		return fmt.Errorf("duplicate volume name %q", lv.Name)
	}
	r.volumes[lv.Name] = lv
	r.volumeNames = append(r.volumeNames, lv.Name)
	return nil
}

func (r *Registry) addPlacement(pv *PhysicalVolume) error {
	if pv.Name == "" {
		return fmt.Errorf("placement with empty name")
	}
	if _, dup := r.placements[pv.Name]; dup {
		return fmt.Errorf("duplicate placement name %q", pv.Name)
	}
	r.placements[pv.Name] = pv
	r.placementNames = append(r.placementNames, pv.Name)
	return nil
}

// Isotope returns the registered isotope of that name.
func (r *Registry) Isotope(name string) (*Isotope, bool) {
	iso, ok := r.isotopes[name]
	return iso, ok
}

// Element returns the registered element of that name.
func (r *Registry) Element(name string) (*Element, bool) {
	el, ok := r.elements[name]
	return el, ok
}

// Material returns the registered material of that name.
func (r *Registry) Material(name string) (*Material, bool) {
	m, ok := r.materials[name]
	return m, ok
}

// Solid returns the registered solid of that name.
func (r *Registry) Solid(name string) (Solid, bool) {
	s, ok := r.solids[name]
	return s, ok
}

func (r *Registry) hasSolid(name string) bool {
	_, ok := r.solids[name]
	return ok
}

// Volume returns the registered logical volume of that name.
func (r *Registry) Volume(name string) (*LogicalVolume, bool) {
	lv, ok := r.volumes[name]
	return lv, ok
}

// Placement returns the registered physical volume of that name.
func (r *Registry) Placement(name string) (*PhysicalVolume, bool) {
	pv, ok := r.placements[name]
	return pv, ok
}

// IsotopeNames returns all isotope names in registration order.
func (r *Registry) IsotopeNames() []string {
	return append([]string(nil), r.isotopeNames...)
}

// ElementNames returns all element names in registration order.
func (r *Registry) ElementNames() []string {
	return append([]string(nil), r.elementNames...)
}

// MaterialNames returns all material names in registration order.
func (r *Registry) MaterialNames() []string {
	return append([]string(nil), r.materialNames...)
}

// SolidNames returns all solid names in registration order.
func (r *Registry) SolidNames() []string {
	return append([]string(nil), r.solidNames...)
}

// VolumeNames returns all logical volume names in registration order.
func (r *Registry) VolumeNames() []string {
	return append([]string(nil), r.volumeNames...)
}

// PlacementNames returns all placement names in registration order.
func (r *Registry) PlacementNames() []string {
	return append([]string(nil), r.placementNames...)
}

// SetWorld designates a registered logical volume as the world volume
// for export.
func (r *Registry) SetWorld(lv *LogicalVolume) error {
	if lv == nil {
		return fmt.Errorf("world volume is nil")
	}
	if reglv, ok := r.volumes[lv.Name]; !ok || reglv != lv {
		return fmt.Errorf("world volume %q is not registered", lv.Name)
	}
	r.world = lv
	return nil
}

// World returns the designated world volume, or nil if none is set.
func (r *Registry) World() *LogicalVolume {
	return r.world
}
