package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResource_Coordinate(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		lat  *float64
		lng  *float64
		ok   bool
	}{
		{name: "有効な座標", lat: f(42.7638), lng: f(-71.4671), ok: true},
		{name: "境界値", lat: f(-90), lng: f(180), ok: true},
		{name: "緯度がnil", lat: nil, lng: f(-71.4671), ok: false},
		{name: "経度がnil", lat: f(42.7638), lng: nil, ok: false},
		{name: "緯度がNaN", lat: f(math.NaN()), lng: f(-71.4671), ok: false},
		{name: "経度がNaN", lat: f(42.7638), lng: f(math.NaN()), ok: false},
		{name: "緯度が+Inf", lat: f(math.Inf(1)), lng: f(-71.4671), ok: false},
		{name: "経度が-Inf", lat: f(42.7638), lng: f(math.Inf(-1)), ok: false},
		{name: "緯度が範囲外", lat: f(90.5), lng: f(-71.4671), ok: false},
		{name: "経度が範囲外", lat: f(42.7638), lng: f(-180.5), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resource{Name: "r", Lat: tt.lat, Lng: tt.lng}
			coord, ok := r.Coordinate()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ok, r.HasCoordinate())
			if ok {
				assert.Equal(t, LatLng{Lat: *tt.lat, Lng: *tt.lng}, coord)
			} else {
				assert.Equal(t, LatLng{}, coord)
			}
		})
	}
}
