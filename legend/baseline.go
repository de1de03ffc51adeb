package legend

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/legend-exp/legendgeom/geom"
	"github.com/legend-exp/legendgeom/geom/gdml"
	"github.com/legend-exp/legendgeom/legend/icpc"
)

// Setup is a fully built baseline geometry together with its registry.
type Setup struct {
	Registry  *geom.Registry
	World     *geom.LogicalVolume
	Tank      *Tank
	Materials *MaterialSet
	Hall      Hall

	// Crystals are the germanium placements of a filled setup, in
	// slot order.
	Crystals []*geom.PhysicalVolume
}

// Build constructs the complete baseline geometry for the given setup.
// A nil spec builds the default: LNGS hall, infrastructure only.
func Build(spec *SetupSpec) (*Setup, error) {
	if spec == nil {
		spec = &SetupSpec{}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	hall := spec.Hall
	if hall == "" {
		hall = HallLNGS
	}

	reg := geom.NewRegistry()
	mats, err := BuildMaterials(reg)
	if err != nil {
		return nil, err
	}

	const rock = 2.0 // m, rock shell around the cavern
	var worldSolid, cavernSolid geom.Solid
	var cavernHeight float64 // m
	switch hall {
	case HallLNGS:
		// Hall A, 20 x 100 x 18 m cavern
		const width, length, height = 22.0, 102.0, 20.0
		worldSolid, err = geom.NewBox(reg, "ws", width, length, height, geom.Meter)
		if err != nil {
			return nil, err
		}
		cavernSolid, err = geom.NewBox(reg, "rs", width-rock, length-rock, height-rock, geom.Meter)
		if err != nil {
			return nil, err
		}
		cavernHeight = height - rock
	case HallSNOLab:
		// cryopit, 6 m radius and 17 m height
		const radius, height = 8.0, 19.0
		worldSolid, err = geom.NewTubs(reg, "ws", 0, radius, height, 0, 2*math.Pi, geom.Meter)
		if err != nil {
			return nil, err
		}
		cavernSolid, err = geom.NewTubs(reg, "rs", 0, radius-rock, height-rock, 0, 2*math.Pi, geom.Meter)
		if err != nil {
			return nil, err
		}
		cavernHeight = height - rock
	}

	worldLV, err := geom.NewLogicalVolume(reg, "worldLV", worldSolid, mats.Rock)
	if err != nil {
		return nil, err
	}
	cavernLV, err := geom.NewLogicalVolume(reg, "cavernLV", cavernSolid, mats.Air)
	if err != nil {
		return nil, err
	}
	if _, err := geom.NewPhysicalVolume(reg, "cavernPV", cavernLV, worldLV, geom.Rotation{}, r3.Vec{}, 0); err != nil {
		return nil, err
	}

	tank, err := BuildTank(reg, mats)
	if err != nil {
		return nil, err
	}
	// set the tank down on the cavern floor
	shift := -(cavernHeight - tank.Height/100) / 2 * 1000 // mm
	if _, err := geom.NewPhysicalVolume(reg, "tankPV", tank.LV, cavernLV, geom.Rotation{}, r3.Vec{Z: shift}, 0); err != nil {
		return nil, err
	}

	if err := reg.SetWorld(worldLV); err != nil {
		return nil, err
	}

	setup := &Setup{
		Registry:  reg,
		World:     worldLV,
		Tank:      tank,
		Materials: mats,
		Hall:      hall,
	}
	if spec.Filled {
		if spec.Detectors == "" {
			err = setup.placeIdealCrystals()
		} else {
			err = setup.placeConfiguredCrystals(spec.Detectors)
		}
		if err != nil {
			return nil, err
		}
	} else if spec.Detectors != "" {
		logrus.Warnf("detector config %s ignored: setup is not filled", spec.Detectors)
	}

	logrus.Infof("built %s geometry: %d volumes, %d placements, %d crystals",
		hall, len(reg.VolumeNames()), len(reg.PlacementNames()), len(setup.Crystals))
	return setup, nil
}

// placeIdealCrystals fills every slot with the ideal crystal
// template: one cylinder logical volume, placed per slot under the
// slot's copy number.
func (s *Setup) placeIdealCrystals() error {
	const (
		radius = 4.5  // cm
		height = 11.0 // cm
	)
	geSolid, err := geom.NewTubs(s.Registry, "IGe", 0, radius, height, 0, 2*math.Pi, geom.Centimeter)
	if err != nil {
		return err
	}
	geLV, err := geom.NewLogicalVolume(s.Registry, "IGeLV", geSolid, s.Materials.EnrGe)
	if err != nil {
		return err
	}

	for _, key := range s.Tank.slotOrder {
		cn := key.CopyNumber()
		pv, err := geom.NewPhysicalVolume(s.Registry, "GePV"+strconv.Itoa(cn),
			geLV, s.Tank.ULAr[key.Tower], geom.Rotation{}, s.Tank.slots[key], cn)
		if err != nil {
			return err
		}
		s.Crystals = append(s.Crystals, pv)
	}
	logrus.Infof("placed %d ideal crystals", len(s.Crystals))
	return nil
}

// placeConfiguredCrystals builds each crystal listed in the detector
// configuration from its shape file and places it in its slot.
func (s *Setup) placeConfiguredCrystals(path string) error {
	assignments, err := LoadDetectorConfig(path)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		spec, err := icpc.Load(a.File)
		if err != nil {
			return err
		}
		lv, err := icpc.Build(s.Registry, s.Materials.EnrGe, spec)
		if err != nil {
			return err
		}
		pos, ok := s.Tank.Slot(a.Slot)
		if !ok {
			return fmt.Errorf("crystal %s: no slot tower=%d string=%d layer=%d",
				spec.DetName, a.Slot.Tower, a.Slot.String, a.Slot.Layer)
		}
		pv, err := geom.NewPhysicalVolume(s.Registry, "GePV-"+spec.DetName,
			lv, s.Tank.ULAr[a.Slot.Tower], geom.Rotation{}, pos, a.Slot.CopyNumber())
		if err != nil {
			return err
		}
		s.Crystals = append(s.Crystals, pv)
		logrus.Debugf("placed crystal %s at tower=%d string=%d layer=%d",
			spec.DetName, a.Slot.Tower, a.Slot.String, a.Slot.Layer)
	}
	logrus.Infof("placed %d configured crystals", len(s.Crystals))
	return nil
}

// WriteGDML exports the built geometry to a GDML file.
func (s *Setup) WriteGDML(path string) error {
	return gdml.Write(path, s.Registry)
}
