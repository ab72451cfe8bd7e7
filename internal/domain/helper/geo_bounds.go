package helper

import (
	"github.com/paulmach/orb"

	"SafeHelp-App/internal/domain/model"
)

// ToPoint LatLng を orb.Point（経度, 緯度の順）に変換
func ToPoint(l model.LatLng) orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// FromPoint orb.Point を LatLng に変換
func FromPoint(p orb.Point) model.LatLng {
	return model.LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// Bounds は座標を持つリソース全体を包む境界ボックスを返す
// 座標を持つリソースがない場合はfalse
func Bounds(resources []model.Resource) (orb.Bound, bool) {
	var points orb.MultiPoint
	for _, r := range resources {
		if coord, ok := r.Coordinate(); ok {
			points = append(points, ToPoint(coord))
		}
	}
	if len(points) == 0 {
		return orb.Bound{}, false
	}
	return points.Bound(), true
}
