// Package legend assembles the LEGEND-1000 baseline geometry: the
// experimental hall, the water tank with its cryostat and copper
// reentrant tubes, and the germanium detector array, all registered
// into a geom.Registry ready for GDML export.
//
// The build is driven by a SetupSpec. The hall is either LNGS Hall A
// or the SNOLab cryopit; a filled setup places crystals into the slot
// grid of the four towers, either as ideal placeholder cylinders or as
// real crystal shapes listed in a detector configuration file.
package legend
