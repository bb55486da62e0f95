package geo

import (
	"fmt"
	"math"
	"strconv"
)

const earthRadiusKm = 6371

// Coordinate is a latitude-first point, the order the map renderer consumes.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Bounds struct {
	SouthWest Coordinate `json:"south_west"`
	NorthEast Coordinate `json:"north_east"`
}

// DefaultCenter is the map center used while the viewer position is unknown (Brasília).
var DefaultCenter = Coordinate{Lat: -15.7801, Lon: -47.9292}

func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180 &&
		!math.IsNaN(c.Lat) && !math.IsNaN(c.Lon)
}

// LonLat renders the coordinate the way OSRM expects it in a path segment.
func (c Coordinate) LonLat() string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g,%g)", c.Lat, c.Lon)
}

// FromLonLat converts a GeoJSON position ([lon, lat, ...]) into a Coordinate.
func FromLonLat(pair []float64) (Coordinate, error) {
	if len(pair) < 2 {
		return Coordinate{}, fmt.Errorf("posição inválida: esperado [lon, lat], recebido %v", pair)
	}
	return Coordinate{Lat: pair[1], Lon: pair[0]}, nil
}

// BoundsOf returns the smallest box containing every point. ok is false for an empty slice.
func BoundsOf(points []Coordinate) (b Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b = Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		b.SouthWest.Lat = math.Min(b.SouthWest.Lat, p.Lat)
		b.SouthWest.Lon = math.Min(b.SouthWest.Lon, p.Lon)
		b.NorthEast.Lat = math.Max(b.NorthEast.Lat, p.Lat)
		b.NorthEast.Lon = math.Max(b.NorthEast.Lon, p.Lon)
	}
	return b, true
}

// Haversine returns the great-circle distance in kilometers.
func Haversine(a, b Coordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
