package common

import "github.com/jakecoffman/cp"

// Display units are pixels. Simulation units are what the cp space works in.
const (
	DisplayToSim = 1.0 / 100.0
	SimToDisplay = 100.0
)

// ToSim converts a display-space position into simulation units.
func ToSim(v cp.Vector) cp.Vector {
	return v.Mult(DisplayToSim)
}

// ToDisplay converts a simulation-space position into display units.
func ToDisplay(v cp.Vector) cp.Vector {
	return v.Mult(SimToDisplay)
}

// ToSimScalar converts a display length into simulation units.
func ToSimScalar(v float64) float64 {
	return v * DisplayToSim
}

// ToDisplayScalar converts a simulation length into display units.
func ToDisplayScalar(v float64) float64 {
	return v * SimToDisplay
}
