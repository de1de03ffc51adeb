package gdml

import "encoding/xml"

// document is the marshaling shape of a complete GDML file. Section
// order follows the GDML schema and is fixed by field order.
type document struct {
	XMLName   xml.Name  `xml:"gdml"`
	XSI       string    `xml:"xmlns:xsi,attr"`
	Schema    string    `xml:"xsi:noNamespaceSchemaLocation,attr"`
	Define    define    `xml:"define"`
	Materials materials `xml:"materials"`
	Solids    solids    `xml:"solids"`
	Structure structure `xml:"structure"`
	Setup     setup     `xml:"setup"`
}

// define stays empty: all positions and rotations are written inline
// in their physvol elements.
type define struct{}

type materials struct {
	Isotopes  []isotope   `xml:"isotope"`
	Elements  []element   `xml:"element"`
	Materials []composite `xml:"material"`
}

type isotope struct {
	Name string `xml:"name,attr"`
	Z    int    `xml:"Z,attr"`
	N    int    `xml:"N,attr"`
	Atom atom   `xml:"atom"`
}

type atom struct {
	Unit  string  `xml:"unit,attr"`
	Value float64 `xml:"value,attr"`
}

type element struct {
	Name      string     `xml:"name,attr"`
	Formula   string     `xml:"formula,attr,omitempty"`
	Fractions []fraction `xml:"fraction"`
}

// fraction is a mass-fraction (in materials) or abundance (in
// elements) reference to a named component.
type fraction struct {
	N   float64 `xml:"n,attr"`
	Ref string  `xml:"ref,attr"`
}

type composite struct {
	Name      string     `xml:"name,attr"`
	D         density    `xml:"D"`
	Fractions []fraction `xml:"fraction"`
}

type density struct {
	Unit  string  `xml:"unit,attr"`
	Value float64 `xml:"value,attr"`
}

// solids holds one entry per registered solid in registration order.
// The entries are mixed element types, so marshaling is done by hand
// instead of through per-type slices that would regroup them.
type solids struct {
	items []any
}

func (s solids) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, item := range s.items {
		if err := e.Encode(item); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

type box struct {
	XMLName xml.Name `xml:"box"`
	Name    string   `xml:"name,attr"`
	X       float64  `xml:"x,attr"`
	Y       float64  `xml:"y,attr"`
	Z       float64  `xml:"z,attr"`
	Lunit   string   `xml:"lunit,attr"`
}

type tube struct {
	XMLName  xml.Name `xml:"tube"`
	Name     string   `xml:"name,attr"`
	RMin     float64  `xml:"rmin,attr"`
	RMax     float64  `xml:"rmax,attr"`
	Z        float64  `xml:"z,attr"`
	StartPhi float64  `xml:"startphi,attr"`
	DeltaPhi float64  `xml:"deltaphi,attr"`
	Lunit    string   `xml:"lunit,attr"`
	Aunit    string   `xml:"aunit,attr"`
}

type cone struct {
	XMLName  xml.Name `xml:"cone"`
	Name     string   `xml:"name,attr"`
	RMin1    float64  `xml:"rmin1,attr"`
	RMax1    float64  `xml:"rmax1,attr"`
	RMin2    float64  `xml:"rmin2,attr"`
	RMax2    float64  `xml:"rmax2,attr"`
	Z        float64  `xml:"z,attr"`
	StartPhi float64  `xml:"startphi,attr"`
	DeltaPhi float64  `xml:"deltaphi,attr"`
	Lunit    string   `xml:"lunit,attr"`
	Aunit    string   `xml:"aunit,attr"`
}

type genericPolycone struct {
	XMLName  xml.Name  `xml:"genericPolycone"`
	Name     string    `xml:"name,attr"`
	StartPhi float64   `xml:"startphi,attr"`
	DeltaPhi float64   `xml:"deltaphi,attr"`
	Lunit    string    `xml:"lunit,attr"`
	Aunit    string    `xml:"aunit,attr"`
	Points   []rzPoint `xml:"rzpoint"`
}

type rzPoint struct {
	R float64 `xml:"r,attr"`
	Z float64 `xml:"z,attr"`
}

type structure struct {
	Volumes []volume `xml:"volume"`
}

type volume struct {
	Name        string      `xml:"name,attr"`
	MaterialRef ref         `xml:"materialref"`
	SolidRef    ref         `xml:"solidref"`
	PhysVols    []physvol   `xml:"physvol"`
	Auxiliary   []auxiliary `xml:"auxiliary"`
}

type ref struct {
	Ref string `xml:"ref,attr"`
}

type physvol struct {
	Name       string    `xml:"name,attr"`
	CopyNumber int       `xml:"copynumber,attr"`
	VolumeRef  ref       `xml:"volumeref"`
	Position   *position `xml:"position"`
	Rotation   *rotation `xml:"rotation"`
}

type position struct {
	Name string  `xml:"name,attr"`
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Z    float64 `xml:"z,attr"`
	Unit string  `xml:"unit,attr"`
}

type rotation struct {
	Name string  `xml:"name,attr"`
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Z    float64 `xml:"z,attr"`
	Unit string  `xml:"unit,attr"`
}

type auxiliary struct {
	Type  string `xml:"auxtype,attr"`
	Value string `xml:"auxvalue,attr"`
}

type setup struct {
	Name    string `xml:"name,attr"`
	Version string `xml:"version,attr"`
	World   ref    `xml:"world"`
}
