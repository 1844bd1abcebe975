package utils

import (
	"errors"

	"github.com/umahmood/haversine"
)

var ErrInvalidCoordinates = errors.New("tọa độ không hợp lệ")

// ValidateCoordinates kiểm tra lat/lon nằm trong khoảng WGS84
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// DistanceKm tính khoảng cách vòng cung lớn (km) giữa hai điểm lat/lon
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lon1},
		haversine.Coord{Lat: lat2, Lon: lon2},
	)
	return km
}
