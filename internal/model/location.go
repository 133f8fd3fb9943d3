package model

// Coordinates is a raw lon/lat pair, as it arrives on the wire.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Location is either a matrix index, a coordinate pair, or both. Index
// is the value the Cost Oracle indexes matrices with; Coords, when
// present, is carried through to the output for geometry.
type Location struct {
	HasIndex bool
	Index    uint32
	HasCoords bool
	Coords   Coordinates
}

// NewLocationFromIndex builds a Location backed by a matrix index only.
func NewLocationFromIndex(idx uint32) Location {
	return Location{HasIndex: true, Index: idx}
}

// NewLocationFromCoords builds a Location backed by coordinates only.
func NewLocationFromCoords(c Coordinates) Location {
	return Location{HasCoords: true, Coords: c}
}

// NewLocationFromIndexAndCoords builds a Location carrying both.
func NewLocationFromIndexAndCoords(idx uint32, c Coordinates) Location {
	return Location{HasIndex: true, Index: idx, HasCoords: true, Coords: c}
}
