package model

// LatLng 緯度経度を表す基本的な型（WGS84, 度）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid 緯度が-90〜90、経度が-180〜180の有限値であるかチェック
func (l LatLng) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Resource 支援リソース（フードバンク、シェルター等）を表すモデル
// データセット内の並び順がそのまま識別子として扱われる
type Resource struct {
	Name          string   `json:"name" db:"name" firestore:"name"`
	Address       string   `json:"address" db:"address" firestore:"address"`
	Category      string   `json:"category" db:"category" firestore:"category"`
	OpenHours     string   `json:"open_hours" db:"open_hours" firestore:"open_hours"`
	Contact       string   `json:"contact" db:"contact" firestore:"contact"`
	YouthFriendly bool     `json:"youth_friendly" db:"youth_friendly" firestore:"youth_friendly"`
	Lat           *float64 `json:"lat" db:"lat" firestore:"lat"` // 欠損時はnil
	Lng           *float64 `json:"lng" db:"lng" firestore:"lng"` // 欠損時はnil
}

// NewResource 座標付きのResourceを作成する
func NewResource(name, category string, lat, lng float64) Resource {
	return Resource{
		Name:     name,
		Category: category,
		Lat:      &lat,
		Lng:      &lng,
	}
}

// Coordinate リソースの座標を返す
// nil、NaN、±Inf、範囲外の緯度経度は欠損として扱いfalseを返す
func (r *Resource) Coordinate() (LatLng, bool) {
	if r.Lat == nil || r.Lng == nil {
		return LatLng{}, false
	}
	l := LatLng{Lat: *r.Lat, Lng: *r.Lng}
	if !l.Valid() {
		return LatLng{}, false
	}
	return l, true
}

// HasCoordinate 座標が設定されているかチェック
func (r *Resource) HasCoordinate() bool {
	_, ok := r.Coordinate()
	return ok
}

// AnnotatedResource 利用者位置からの距離（マイル）を付与したResource
// 利用者位置が未取得の場合Distanceはnil
type AnnotatedResource struct {
	Resource
	Distance *float64 `json:"distance,omitempty"`
}

// HasDistance 距離が付与されているかチェック
func (a *AnnotatedResource) HasDistance() bool {
	return a.Distance != nil
}

// City 都市ごとのデータセットの表示用情報
type City struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}
