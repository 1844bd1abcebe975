package utils

import (
	"math"
	"testing"
)

func TestValidateCoordinates(t *testing.T) {
	cases := []struct {
		lat, lon float64
		ok       bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{10.762622, 106.660172, true}, // Sài Gòn
		{91, 0, false},
		{-91, 0, false},
		{0, 181, false},
		{0, -181, false},
	}
	for _, tc := range cases {
		err := ValidateCoordinates(tc.lat, tc.lon)
		if tc.ok && err != nil {
			t.Errorf("ValidateCoordinates(%v, %v) = %v, muốn nil", tc.lat, tc.lon, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ValidateCoordinates(%v, %v) = nil, muốn lỗi", tc.lat, tc.lon)
		}
	}
}

func TestDistanceKm(t *testing.T) {
	// 1 độ kinh tuyến trên xích đạo ≈ 111.19 km
	got := DistanceKm(0, 0, 0, 1)
	if math.Abs(got-111.19) > 0.5 {
		t.Errorf("DistanceKm(0,0 -> 0,1) = %v, muốn ~111.19", got)
	}

	if d := DistanceKm(10.5, 106.6, 10.5, 106.6); d != 0 {
		t.Errorf("khoảng cách cùng một điểm = %v, muốn 0", d)
	}

	// đối xứng
	ab := DistanceKm(10.76, 106.66, 21.03, 105.85) // SG -> HN
	ba := DistanceKm(21.03, 105.85, 10.76, 106.66)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("khoảng cách không đối xứng: %v vs %v", ab, ba)
	}
	if ab < 1100 || ab > 1200 {
		t.Errorf("SG -> HN = %v km, muốn khoảng 1100-1200", ab)
	}
}
