package domain

import (
	"errors"
	"math"
	"strconv"
)

var ErrNoCoordinate = errors.New("no coordinate")

const earthRadiusMeters = 6371000.0

// Coordinate is a WGS84 point. User and item documents store latitude
// and longitude as decimal-degree strings; ParseCoordinate is the only
// place they are interpreted.
type Coordinate struct {
	Lat float64
	Lon float64
}

// ParseCoordinate parses the stored decimal-degree strings. Missing or
// malformed values return ErrNoCoordinate instead of silently becoming
// (0,0); callers decide what an unknown position means.
func ParseCoordinate(lat, lon string) (Coordinate, error) {
	if lat == "" || lon == "" {
		return Coordinate{}, ErrNoCoordinate
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Coordinate{}, ErrNoCoordinate
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return Coordinate{}, ErrNoCoordinate
	}
	if la < -90 || la > 90 || lo < -180 || lo > 180 {
		return Coordinate{}, ErrNoCoordinate
	}
	return Coordinate{Lat: la, Lon: lo}, nil
}

// DistanceMeters is the haversine great-circle distance.
func (c Coordinate) DistanceMeters(other Coordinate) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - c.Lat) * math.Pi / 180
	dLon := (other.Lon - c.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// WithinRadiusKm reports whether other lies within radiusKm of c. The
// boundary is inclusive: a point at exactly radiusKm matches.
func (c Coordinate) WithinRadiusKm(other Coordinate, radiusKm float64) bool {
	return c.DistanceMeters(other) <= radiusKm*1000
}
