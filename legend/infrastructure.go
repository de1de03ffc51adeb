package legend

import (
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/legend-exp/legendgeom/geom"
)

// Array layout: four copper towers, each holding twelve outer strings
// and two inner strings of eight crystal slots.
const (
	towerCount       = 4
	outerStringCount = 12
	stringCount      = 14
	layerCount       = 8
	slotsPerTower    = stringCount * layerCount
)

// SlotKey addresses one crystal slot of the array.
type SlotKey struct {
	Tower  int
	String int
	Layer  int
}

// CopyNumber returns the placement copy number encoding the slot.
func (k SlotKey) CopyNumber() int {
	return k.Tower*slotsPerTower + k.String*layerCount + k.Layer
}

// Tank is the water tank with the cryostat and the copper insert
// towers inside. Slot positions are local to the ULAr volume of the
// slot's tower and identical across towers.
type Tank struct {
	LV     *geom.LogicalVolume
	Water  *geom.LogicalVolume
	ULAr   [towerCount]*geom.LogicalVolume
	Height float64 // full tank height in cm

	slotOrder []SlotKey
	slots     map[SlotKey]r3.Vec
}

// Slots returns all slot keys, tower-major, then string, then layer.
func (t *Tank) Slots() []SlotKey {
	return append([]SlotKey(nil), t.slotOrder...)
}

// Slot returns the position of the slot inside its tower's ULAr
// volume, in millimeters.
func (t *Tank) Slot(k SlotKey) (r3.Vec, bool) {
	pos, ok := t.slots[k]
	return pos, ok
}

// BuildTank constructs the water tank, the cryostat and the copper
// towers, and returns the tank together with the crystal slot map.
func BuildTank(reg *geom.Registry, mats *MaterialSet) (*Tank, error) {
	const (
		wallTop    = 0.6    // cm
		wallBottom = 0.8    // cm
		innerRad   = 550.0  // cm, for an 11 m diameter
		height     = 1300.0 // cm
	)

	tankSolid, err := geom.NewCons(reg, "tank",
		0, innerRad+wallBottom, 0, innerRad+wallTop, height, 0, 2*math.Pi, geom.Centimeter)
	if err != nil {
		return nil, err
	}
	tankLV, err := geom.NewLogicalVolume(reg, "tankLV", tankSolid, mats.Steel)
	if err != nil {
		return nil, err
	}

	waterSolid, err := geom.NewTubs(reg, "water",
		0, innerRad, height-wallBottom, 0, 2*math.Pi, geom.Centimeter)
	if err != nil {
		return nil, err
	}
	waterLV, err := geom.NewLogicalVolume(reg, "waterLV", waterSolid, mats.Water)
	if err != nil {
		return nil, err
	}
	waterLV.AddAuxiliary(geom.Auxiliary{Type: "SensDet", Value: "WaterDet"})
	if _, err := geom.NewPhysicalVolume(reg, "waterPV", waterLV, tankLV, geom.Rotation{}, r3.Vec{}, 0); err != nil {
		return nil, err
	}

	tank := &Tank{
		LV:     tankLV,
		Water:  waterLV,
		Height: height,
		slots:  make(map[SlotKey]r3.Vec, towerCount*slotsPerTower),
	}
	larLV, err := buildCryostat(reg, mats, waterLV)
	if err != nil {
		return nil, err
	}
	if err := buildCopperTowers(reg, mats, larLV, tank); err != nil {
		return nil, err
	}
	logrus.Debugf("tank built: %d crystal slots in %d towers", len(tank.slotOrder), towerCount)
	return tank, nil
}

// buildCryostat nests the steel shells, the vacuum gap and the liquid
// argon fill inside the water volume and returns the argon volume.
func buildCryostat(reg *geom.Registry, mats *MaterialSet, waterLV *geom.LogicalVolume) (*geom.LogicalVolume, error) {
	const (
		wall   = 0.5   // cm
		vacGap = 0.25  // cm
		radius = 350.0 // cm
		height = 700.0 // cm
	)
	lidShift := (height/2 + wall/2) * 10 // mm

	outSolid, err := geom.NewTubs(reg, "Cout", 0, radius, height, 0, 2*math.Pi, geom.Centimeter)
	if err != nil {
		return nil, err
	}
	vacSolid, err := geom.NewTubs(reg, "Cvac", 0, radius-wall, height, 0, 2*math.Pi, geom.Centimeter)
	if err != nil {
		return nil, err
	}
	innSolid, err := geom.NewTubs(reg, "Cinn", 0, radius-wall-vacGap, height, 0, 2*math.Pi, geom.Centimeter)
	if err != nil {
		return nil, err
	}
	lidSolid, err := geom.NewTubs(reg, "Lid", 0, radius, wall, 0, 2*math.Pi, geom.Centimeter)
	if err != nil {
		return nil, err
	}
	larSolid, err := geom.NewTubs(reg, "LAr", 0, radius-2*wall-vacGap, height, 0, 2*math.Pi, geom.Centimeter)
	if err != nil {
		return nil, err
	}

	outLV, err := geom.NewLogicalVolume(reg, "CoutLV", outSolid, mats.Steel)
	if err != nil {
		return nil, err
	}
	vacLV, err := geom.NewLogicalVolume(reg, "CvacLV", vacSolid, mats.Vacuum)
	if err != nil {
		return nil, err
	}
	innLV, err := geom.NewLogicalVolume(reg, "CinnLV", innSolid, mats.Steel)
	if err != nil {
		return nil, err
	}
	// top and bottom lids share the lid solid
	lidLV, err := geom.NewLogicalVolume(reg, "LidLV", lidSolid, mats.Steel)
	if err != nil {
		return nil, err
	}
	botLV, err := geom.NewLogicalVolume(reg, "BotLV", lidSolid, mats.Steel)
	if err != nil {
		return nil, err
	}
	larLV, err := geom.NewLogicalVolume(reg, "LArLV", larSolid, mats.LAr)
	if err != nil {
		return nil, err
	}
	larLV.AddAuxiliary(geom.Auxiliary{Type: "SensDet", Value: "LArDet"})

	if _, err := geom.NewPhysicalVolume(reg, "CoutPV", outLV, waterLV, geom.Rotation{}, r3.Vec{}, 0); err != nil {
		return nil, err
	}
	if _, err := geom.NewPhysicalVolume(reg, "CvacPV", vacLV, outLV, geom.Rotation{}, r3.Vec{}, 0); err != nil {
		return nil, err
	}
	if _, err := geom.NewPhysicalVolume(reg, "CinnPV", innLV, vacLV, geom.Rotation{}, r3.Vec{}, 0); err != nil {
		return nil, err
	}
	if _, err := geom.NewPhysicalVolume(reg, "LidPV", lidLV, waterLV, geom.Rotation{}, r3.Vec{Z: lidShift}, 0); err != nil {
		return nil, err
	}
	if _, err := geom.NewPhysicalVolume(reg, "BotPV", botLV, waterLV, geom.Rotation{}, r3.Vec{Z: -lidShift}, 0); err != nil {
		return nil, err
	}
	if _, err := geom.NewPhysicalVolume(reg, "LArPV", larLV, innLV, geom.Rotation{}, r3.Vec{}, 0); err != nil {
		return nil, err
	}
	return larLV, nil
}

// buildCopperTowers places the four copper inserts with their
// underground argon fill in the argon volume and fills the slot map.
func buildCopperTowers(reg *geom.Registry, mats *MaterialSet, larLV *geom.LogicalVolume, tank *Tank) error {
	const (
		wall      = 0.1   // cm
		radius    = 45.5  // cm
		height    = 400.0 // cm
		shift     = 150.0 // cm, raise towers inside the cryostat
		ringRad   = 100.0 // cm, tower ring radius
		stringRad = 34.0  // cm, outer string ring radius
		innerRing = 13.5  // cm, inner strings 12 and 13
		holderH   = 13.0  // cm, crystal holder height
		gap       = 3.0   // cm, gap between holders on a string
	)

	copperSolid, err := geom.NewTubs(reg, "Copper", radius-wall, radius, height, 0, 2*math.Pi, geom.Centimeter)
	if err != nil {
		return err
	}
	ularSolid, err := geom.NewTubs(reg, "ULAr", 0, radius-wall, height, 0, 2*math.Pi, geom.Centimeter)
	if err != nil {
		return err
	}

	// slot grid local to one tower, in mm
	pitch := (holderH + gap) * 10
	layerZ := func(layer int) float64 {
		return -pitch/2 + float64(layerCount)/2*pitch - float64(layer)*pitch
	}
	// drop the strings so the lowest slot clears the copper bottom
	// by 10 cm
	zshift := 10*height/2 + layerZ(layerCount-1) - 100
	outerAngle := 2 * math.Pi / float64(outerStringCount)
	slotLocal := func(str, layer int) r3.Vec {
		z := layerZ(layer) - zshift
		if str < outerStringCount {
			angle := float64(str) * outerAngle
			return r3.Vec{
				X: 10 * stringRad * math.Cos(angle),
				Y: 10 * stringRad * math.Sin(angle),
				Z: z,
			}
		}
		// inner strings sit on the +y and -y axes
		return r3.Vec{Y: 10 * innerRing * math.Cos(float64(str-outerStringCount)*math.Pi), Z: z}
	}

	towerPos := [towerCount]r3.Vec{
		{X: 10 * ringRad, Z: 10 * shift},
		{Y: 10 * ringRad, Z: 10 * shift},
		{X: -10 * ringRad, Z: 10 * shift},
		{Y: -10 * ringRad, Z: 10 * shift},
	}
	for tower, pos := range towerPos {
		label := strconv.Itoa(tower)
		copperLV, err := geom.NewLogicalVolume(reg, "CopperLV"+label, copperSolid, mats.Copper)
		if err != nil {
			return err
		}
		ularLV, err := geom.NewLogicalVolume(reg, "ULArLV"+label, ularSolid, mats.LAr)
		if err != nil {
			return err
		}
		ularLV.AddAuxiliary(geom.Auxiliary{Type: "SensDet", Value: "ULArDet"})
		if _, err := geom.NewPhysicalVolume(reg, "CopperPV"+label, copperLV, larLV, geom.Rotation{}, pos, 0); err != nil {
			return err
		}
		if _, err := geom.NewPhysicalVolume(reg, "ULArPV"+label, ularLV, larLV, geom.Rotation{}, pos, 0); err != nil {
			return err
		}
		tank.ULAr[tower] = ularLV

		for str := 0; str < stringCount; str++ {
			for layer := 0; layer < layerCount; layer++ {
				key := SlotKey{Tower: tower, String: str, Layer: layer}
				tank.slots[key] = slotLocal(str, layer)
				tank.slotOrder = append(tank.slotOrder, key)
			}
		}
	}
	return nil
}
