package geom

import (
	"fmt"
	"math"
)

// CompositionTolerance is the allowed deviation of composition sums
// (mass fractions, isotope abundances) from unity. Published isotopic
// abundance tables routinely sum a few 1e-6 away from one.
const CompositionTolerance = 1e-3

// Isotope is a single nuclide used in element mixtures.
type Isotope struct {
	Name      string
	Z, N      int
	MolarMass float64 // g/mole
}

// NewIsotope validates, registers and returns an isotope.
func NewIsotope(reg *Registry, name string, z, n int, molarMass float64) (*Isotope, error) {
	if z <= 0 || n < z {
		return nil, fmt.Errorf("isotope %q: need Z > 0 and N >= Z, got Z=%d N=%d", name, z, n)
	}
	if molarMass <= 0 {
		return nil, fmt.Errorf("isotope %q: molar mass must be positive, got %g", name, molarMass)
	}
	iso := &Isotope{Name: name, Z: z, N: n, MolarMass: molarMass}
	if err := reg.addIsotope(iso); err != nil {
		return nil, err
	}
	return iso, nil
}

// IsotopeFraction is one component of an isotope-mixture element.
type IsotopeFraction struct {
	Isotope   *Isotope
	Abundance float64
}

// Element is an element defined as a mixture of isotopes.
type Element struct {
	Name     string
	Symbol   string
	Isotopes []IsotopeFraction
}

// NewElementFromIsotopes registers and returns an element to which
// isotopes are then added with AddIsotope.
func NewElementFromIsotopes(reg *Registry, name, symbol string) (*Element, error) {
	el := &Element{Name: name, Symbol: symbol}
	if err := reg.addElement(el); err != nil {
		return nil, err
	}
	return el, nil
}

// AddIsotope appends an isotope component with the given abundance.
func (e *Element) AddIsotope(iso *Isotope, abundance float64) {
	e.Isotopes = append(e.Isotopes, IsotopeFraction{Isotope: iso, Abundance: abundance})
}

// Validate checks that the element has components and that abundances
// are positive and sum to one within CompositionTolerance.
func (e *Element) Validate() error {
	if len(e.Isotopes) == 0 {
		return fmt.Errorf("element %q: no isotope components", e.Name)
	}
	sum := 0.0
	for _, f := range e.Isotopes {
		if f.Abundance <= 0 {
			return fmt.Errorf("element %q: isotope %q has non-positive abundance %g", e.Name, f.Isotope.Name, f.Abundance)
		}
		sum += f.Abundance
	}
	if math.Abs(sum-1.0) > CompositionTolerance {
		return fmt.Errorf("element %q: isotope abundances sum to %g, want 1", e.Name, sum)
	}
	return nil
}

// MaterialFraction is a mass-fraction reference to another material.
type MaterialFraction struct {
	Material *Material
	Fraction float64
}

// ElementFraction is a mass-fraction reference to an element.
type ElementFraction struct {
	Element  *Element
	Fraction float64
}

// Material is either a predefined material of the consuming toolkit's
// NIST table (referenced by name only, never defined in the export) or
// a composite built from mass fractions of other materials and
// elements.
type Material struct {
	Name       string
	Predefined bool
	Density    float64 // g/cm3, composite only
	Materials  []MaterialFraction
	Elements   []ElementFraction
}

// NewPredefinedMaterial registers a reference to a NIST table material
// such as G4_WATER. No definition is emitted for it on export.
func NewPredefinedMaterial(reg *Registry, name string) (*Material, error) {
	m := &Material{Name: name, Predefined: true}
	if err := reg.addMaterial(m); err != nil {
		return nil, err
	}
	return m, nil
}

// NewCompositeMaterial registers a composite material of the given
// density (g/cm3) to which components are then added with AddMaterial
// and AddElement.
func NewCompositeMaterial(reg *Registry, name string, density float64) (*Material, error) {
	if density <= 0 {
		return nil, fmt.Errorf("material %q: density must be positive, got %g", name, density)
	}
	m := &Material{Name: name, Density: density}
	if err := reg.addMaterial(m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddMaterial appends a mass-fraction component referencing another
// material.
func (m *Material) AddMaterial(other *Material, fraction float64) {
	m.Materials = append(m.Materials, MaterialFraction{Material: other, Fraction: fraction})
}

// AddElement appends a mass-fraction component referencing an element.
func (m *Material) AddElement(el *Element, fraction float64) {
	m.Elements = append(m.Elements, ElementFraction{Element: el, Fraction: fraction})
}

// Validate checks composite composition: at least one component, all
// fractions positive, and the total mass fraction equal to one within
// CompositionTolerance. Predefined materials are always valid.
func (m *Material) Validate() error {
	if m.Predefined {
		return nil
	}
	if len(m.Materials)+len(m.Elements) == 0 {
		return fmt.Errorf("material %q: composite with no components", m.Name)
	}
	sum := 0.0
	for _, f := range m.Materials {
		if f.Fraction <= 0 {
			return fmt.Errorf("material %q: component %q has non-positive fraction %g", m.Name, f.Material.Name, f.Fraction)
		}
		sum += f.Fraction
	}
	for _, f := range m.Elements {
		if f.Fraction <= 0 {
			return fmt.Errorf("material %q: component %q has non-positive fraction %g", m.Name, f.Element.Name, f.Fraction)
		}
		sum += f.Fraction
	}
	if math.Abs(sum-1.0) > CompositionTolerance {
		return fmt.Errorf("material %q: mass fractions sum to %g, want 1", m.Name, sum)
	}
	return nil
}
