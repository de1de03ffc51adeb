// Package gdml serializes a geom.Registry to a GDML document, the XML
// interchange format read by Geant4. The package maps registry entries
// onto GDML elements and delegates all XML mechanics to encoding/xml;
// it implements no reader and no schema validation.
//
// A document is written in the fixed GDML section order: define,
// materials, solids, structure, setup. Volumes appear in the structure
// section with every daughter defined before its mother, as Geant4
// parsers require. Predefined NIST materials (G4_ names) are
// referenced by name only and never defined.
package gdml
