// Package geom provides the geometry object model for detector
// descriptions: solids, materials, logical and physical volumes, and
// the registry that collects them for export.
//
// The vocabulary follows the Geant4/GDML object model. A solid is a
// named shape parameter record (no tessellation or boolean evaluation
// happens here); a logical volume binds a solid to a material; a
// physical volume places a logical volume inside a mother volume with
// a rotation, a translation and a copy number. The Registry keeps all
// of them in insertion order under unique names, which makes listings
// and the exported GDML deterministic.
//
// Lengths are carried in the unit each solid was declared with and
// written to GDML as-is via the lunit attribute. Placement positions
// are always millimeters, the GDML default. Angles are radians.
//
// Serialization lives in the geom/gdml sub-package; the experiment
// description that uses all of this lives in the legend packages.
package geom
