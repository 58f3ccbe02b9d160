// Package geo provides the great-circle distance and centroid math used
// by the clustering and routing services.
//
// Centroid is an arithmetic mean of latitudes and longitudes, not a true
// spherical centroid. The approximation holds for cluster radii up to
// roughly 50 km, well beyond the default clustering radius.
package geo

import (
	"math"

	"order-cluster-service/internal/domain"
)

// Earth radius in kilometers.
const earthRadiusKm = 6371.0

// Distance returns the great-circle distance between two points in
// kilometers using the haversine formula. Inputs are decimal degrees;
// coordinate validation is the caller's responsibility.
func Distance(a, b domain.Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// Centroid returns the arithmetic mean location of a point set.
func Centroid(points []domain.Point) (domain.Point, error) {
	if len(points) == 0 {
		return domain.Point{}, ErrNoPoints
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	n := float64(len(points))
	return domain.Point{Lat: sumLat / n, Lng: sumLng / n}, nil
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
