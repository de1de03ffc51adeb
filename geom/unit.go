package geom

import "fmt"

// Unit is a length unit tag. It is carried verbatim into the lunit
// attribute of exported GDML elements.
type Unit string

const (
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Meter      Unit = "m"
)

// unitToMM maps recognized units to their millimeter factor.
var unitToMM = map[Unit]float64{
	Millimeter: 1.0,
	Centimeter: 10.0,
	Meter:      1000.0,
}

// Valid reports whether u is a recognized length unit.
func (u Unit) Valid() bool {
	_, ok := unitToMM[u]
	return ok
}

// ToMM converts a value expressed in u to millimeters.
func (u Unit) ToMM(v float64) float64 {
	return v * unitToMM[u]
}

// ToCM converts a value expressed in u to centimeters.
func (u Unit) ToCM(v float64) float64 {
	return v * unitToMM[u] / 10.0
}

func checkUnit(solid string, u Unit) error {
	if !u.Valid() {
		return fmt.Errorf("solid %q: unknown length unit %q", solid, u)
	}
	return nil
}
