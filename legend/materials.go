package legend

import (
	"github.com/sirupsen/logrus"

	"github.com/legend-exp/legendgeom/geom"
)

// MaterialSet holds every material of the baseline geometry under the
// short names the builders use. All of them are registered by
// BuildMaterials even when a particular setup leaves some unplaced.
type MaterialSet struct {
	Vacuum *geom.Material
	Air    *geom.Material
	Water  *geom.Material
	LAr    *geom.Material
	Steel  *geom.Material
	Copper *geom.Material

	// Rock is standard rock, the shielding reference composition.
	Rock *geom.Material
	// Polyurethane is the insulation foam composition.
	Polyurethane *geom.Material
	// EnrGe is germanium enriched in Ge76.
	EnrGe *geom.Material
}

// enrGeIsotopes is the isotopic composition of enriched germanium.
// The abundances are as published and sum to one only within the
// composition tolerance.
var enrGeIsotopes = []struct {
	name      string
	n         int
	molarMass float64
	abundance float64
}{
	{"Ge70", 70, 69.9243, 0.0000397},
	{"Ge72", 72, 71.9221, 0.0000893},
	{"Ge73", 73, 72.9235, 0.000278},
	{"Ge74", 74, 73.9212, 0.1258},
	{"Ge76", 76, 75.9214, 0.8738},
}

// BuildMaterials registers all baseline materials in reg and returns
// them as a set. Defining everything up front keeps material handling
// out of the geometry builders.
func BuildMaterials(reg *geom.Registry) (*MaterialSet, error) {
	ms := &MaterialSet{}

	predefined := []struct {
		dst  **geom.Material
		name string
	}{
		{&ms.Vacuum, "G4_Galactic"},
		{&ms.Air, "G4_AIR"},
		{&ms.Water, "G4_WATER"},
		{&ms.LAr, "G4_lAr"},
		{&ms.Steel, "G4_STAINLESS-STEEL"},
		{&ms.Copper, "G4_Cu"},
	}
	for _, p := range predefined {
		m, err := geom.NewPredefinedMaterial(reg, p.name)
		if err != nil {
			return nil, err
		}
		*p.dst = m
	}

	// single-element NIST materials feeding the composites
	components := map[string]*geom.Material{}
	for _, name := range []string{"G4_H", "G4_C", "G4_O", "G4_N", "G4_Ca", "G4_Mg"} {
		m, err := geom.NewPredefinedMaterial(reg, name)
		if err != nil {
			return nil, err
		}
		components[name] = m
	}

	rock, err := geom.NewCompositeMaterial(reg, "stdrock", 2.65)
	if err != nil {
		return nil, err
	}
	rock.AddMaterial(components["G4_O"], 0.52)
	rock.AddMaterial(components["G4_Ca"], 0.27)
	rock.AddMaterial(components["G4_C"], 0.12)
	rock.AddMaterial(components["G4_Mg"], 0.09)
	ms.Rock = rock

	polyu, err := geom.NewCompositeMaterial(reg, "polyurethane", 0.3)
	if err != nil {
		return nil, err
	}
	polyu.AddMaterial(components["G4_H"], 0.57)
	polyu.AddMaterial(components["G4_C"], 0.29)
	polyu.AddMaterial(components["G4_O"], 0.07)
	polyu.AddMaterial(components["G4_N"], 0.07)
	ms.Polyurethane = polyu

	enrGeElement, err := geom.NewElementFromIsotopes(reg, "enrichedGe", "enrGe")
	if err != nil {
		return nil, err
	}
	for _, iso := range enrGeIsotopes {
		isotope, err := geom.NewIsotope(reg, iso.name, 32, iso.n, iso.molarMass)
		if err != nil {
			return nil, err
		}
		enrGeElement.AddIsotope(isotope, iso.abundance)
	}
	enrGe, err := geom.NewCompositeMaterial(reg, "enrGe", 5.545)
	if err != nil {
		return nil, err
	}
	enrGe.AddElement(enrGeElement, 1)
	ms.EnrGe = enrGe

	for _, name := range reg.MaterialNames() {
		logrus.Debugf("defined material %s", name)
	}
	logrus.Debugf("registered %d materials", len(reg.MaterialNames()))
	return ms, nil
}
