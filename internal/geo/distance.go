// Package geo holds coordinate types and geodesic distance on the WGS84 ellipsoid.
package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/geodesic"
)

type Coordinates struct {
	Lon float64
	Lat float64
}

func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// String renders "lon lat" with the shortest representation that parses back to the same floats.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + " " + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

// ParseCoordinates is the inverse of Coordinates.String.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("coordinates %q: want \"lon lat\"", s)
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("latitude: %w", err)
	}
	c := Coordinates{Lon: lon, Lat: lat}
	if !c.Valid() {
		return Coordinates{}, fmt.Errorf("coordinates %q out of range", s)
	}
	return c, nil
}

// Distance returns the geodesic distance in meters between a and b.
func Distance(a, b Coordinates) float64 {
	var s12 float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &s12, nil, nil)
	return s12
}
