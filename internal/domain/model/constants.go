package model

import "strings"

// CategoryAll は全カテゴリを表す選択値
const CategoryAll = "All"

// 距離計算で使用する定数
const (
	EarthRadiusKm = 6371.0
	KmToMiles     = 0.621371
)

// 地図表示の既定値
const (
	DefaultMapZoom = 13
	DefaultCity    = "nashua-nh"
)

// DefaultFallbackCenter は位置情報取得に失敗した場合の地図中心（ナシュア市中心部）
var DefaultFallbackCenter = LatLng{Lat: 42.7638, Lng: -71.4671}

// CityDisplayName は都市スラッグから表示名を生成する（"nashua-nh" -> "NASHUA NH"）
func CityDisplayName(slug string) string {
	return strings.ToUpper(strings.Replace(slug, "-", " ", 1))
}
