package presenter

import (
	"github.com/paulmach/orb/geojson"

	"SafeHelp-App/internal/domain/helper"
	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/infrastructure/maps"
)

// Marker 地図上のピン
type Marker struct {
	Name     string       `json:"name"`
	Address  string       `json:"address,omitempty"`
	Category string       `json:"category,omitempty"`
	Position model.LatLng `json:"position"`
	Distance string       `json:"distance,omitempty"`
	MapsURL  string       `json:"maps_url,omitempty"`
}

// BoundingBox マーカー全体を包む範囲
type BoundingBox struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// MapView 地図描画に必要な情報
type MapView struct {
	Center     *model.LatLng `json:"center,omitempty"`
	Zoom       int           `json:"zoom"`
	Markers    []Marker      `json:"markers"`
	UserMarker *Marker       `json:"user_marker,omitempty"`
	Recentered bool          `json:"recentered"`
	Bounds     *BoundingBox  `json:"bounds,omitempty"`
}

// NewMapView はViewから地図表示を作成する
// 座標が欠損したリソースはマーカーにしない
func NewMapView(view model.View, zoom int, recentered bool) MapView {
	mv := MapView{
		Center:     view.MapCenter,
		Zoom:       zoom,
		Markers:    make([]Marker, 0, len(view.OrderedResources)),
		Recentered: recentered,
	}

	resources := make([]model.Resource, 0, len(view.OrderedResources))
	for _, r := range view.OrderedResources {
		coord, ok := r.Coordinate()
		if !ok {
			continue
		}
		m := Marker{
			Name:     r.Name,
			Address:  r.Address,
			Category: r.Category,
			Position: coord,
			MapsURL:  maps.SearchURL(r.Address),
		}
		if r.HasDistance() {
			m.Distance = FormatMiles(*r.Distance)
		}
		mv.Markers = append(mv.Markers, m)
		resources = append(resources, r.Resource)
	}

	if view.UserLocation != nil {
		mv.UserMarker = &Marker{Name: "You are here", Position: *view.UserLocation}
	}

	if bound, ok := helper.Bounds(resources); ok {
		mv.Bounds = &BoundingBox{
			South: bound.Min.Lat(),
			West:  bound.Min.Lon(),
			North: bound.Max.Lat(),
			East:  bound.Max.Lon(),
		}
	}
	return mv
}

// GeoJSON はMapViewをGeoJSONのFeatureCollectionに変換する
// 利用者位置は kind=user、リソースは kind=resource のPointになる
func (mv MapView) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range mv.Markers {
		f := geojson.NewFeature(helper.ToPoint(m.Position))
		f.Properties["kind"] = "resource"
		f.Properties["name"] = m.Name
		f.Properties["address"] = m.Address
		f.Properties["category"] = m.Category
		f.Properties["maps_url"] = m.MapsURL
		if m.Distance != "" {
			f.Properties["distance"] = m.Distance
		}
		fc.Append(f)
	}
	if mv.UserMarker != nil {
		f := geojson.NewFeature(helper.ToPoint(mv.UserMarker.Position))
		f.Properties["kind"] = "user"
		f.Properties["name"] = mv.UserMarker.Name
		fc.Append(f)
	}
	return fc
}
