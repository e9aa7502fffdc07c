package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	cases := []struct {
		name string
		a, b Coordinates
		want float64
		tol  float64
	}{
		{"same point", Coordinates{Lon: 37.6173, Lat: 55.7558}, Coordinates{Lon: 37.6173, Lat: 55.7558}, 0, 1e-6},
		{"one degree of meridian at equator", Coordinates{Lon: 0, Lat: 0}, Coordinates{Lon: 0, Lat: 1}, 110574.389, 1},
		{"JFK to LHR", Coordinates{Lon: -73.78, Lat: 40.64}, Coordinates{Lon: -0.46, Lat: 51.47}, 5554747.74, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, Distance(c.a, c.b), c.tol)
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := Coordinates{Lon: 37.6173, Lat: 55.7558}
	b := Coordinates{Lon: 30.3351, Lat: 59.9343}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-6)
}

// Сфера даёт заметно другой результат на длинных дистанциях, эллипсоид обязателен.
func TestDistance_NotSpherical(t *testing.T) {
	a := Coordinates{Lon: 0, Lat: 0}
	b := Coordinates{Lon: 0, Lat: 1}
	spherical := 6371008.8 * math.Pi / 180
	assert.Greater(t, math.Abs(Distance(a, b)-spherical), 500.0)
}

func TestCoordinates_Valid(t *testing.T) {
	assert.True(t, Coordinates{Lon: 180, Lat: -90}.Valid())
	assert.False(t, Coordinates{Lon: 181, Lat: 0}.Valid())
	assert.False(t, Coordinates{Lon: 0, Lat: 90.5}.Valid())
}

func TestCoordinates_StringRoundTrip(t *testing.T) {
	for _, c := range []Coordinates{
		{Lon: 37.61769812345678, Lat: 55.75586412345678},
		{Lon: -0.1, Lat: 0.1 + 0.2},
		{Lon: 180, Lat: -90},
	} {
		got, err := ParseCoordinates(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	assert.Equal(t, "37.6173 55.7558", Coordinates{Lon: 37.6173, Lat: 55.7558}.String())
}

func TestParseCoordinates_Invalid(t *testing.T) {
	for _, s := range []string{"", "37.6", "a b", "37.6 55.7 1", "200 10"} {
		_, err := ParseCoordinates(s)
		assert.Error(t, err, s)
	}
}
