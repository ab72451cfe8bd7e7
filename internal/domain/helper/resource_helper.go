package helper

import (
	"math"
	"sort"

	"SafeHelp-App/internal/domain/model"
)

// Distance は2地点間の大圏距離をハバーサイン公式で計算する (マイル)
func Distance(a, b model.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lng1 := a.Lng * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lng2 := b.Lng * math.Pi / 180
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return model.EarthRadiusKm * c * model.KmToMiles
}

// FilterByCategory は指定カテゴリと完全一致するリソースのみを抽出する
// "All" の場合は入力をそのまま返す
func FilterByCategory(resources []model.Resource, category string) []model.Resource {
	if category == model.CategoryAll {
		return resources
	}
	filtered := make([]model.Resource, 0, len(resources))
	for _, r := range resources {
		if r.Category == category {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// AnnotateAndSort は利用者位置からの距離を付与し、距離の昇順で安定ソートする
// 利用者位置がnilまたは不正な値の場合は距離を付与せず元の順序のまま返す
// 座標が欠損したリソースは距離なしで末尾に元の順序のまま配置する
func AnnotateAndSort(resources []model.Resource, userLocation *model.LatLng) []model.AnnotatedResource {
	annotated := make([]model.AnnotatedResource, len(resources))
	for i, r := range resources {
		annotated[i] = model.AnnotatedResource{Resource: r}
	}
	if userLocation == nil || !userLocation.Valid() {
		return annotated
	}

	for i := range annotated {
		coord, ok := annotated[i].Coordinate()
		if !ok {
			continue
		}
		d := Distance(*userLocation, coord)
		annotated[i].Distance = &d
	}

	sort.SliceStable(annotated, func(i, j int) bool {
		di, dj := annotated[i].Distance, annotated[j].Distance
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di < *dj
		}
	})
	return annotated
}

// Nearest は基準地点に最も近いリソースを返す
// 同距離の場合は先に出現したものを優先し、候補がなければfalseを返す
func Nearest(resources []model.Resource, from model.LatLng) (*model.Resource, bool) {
	var nearest *model.Resource
	if !from.Valid() {
		return nil, false
	}
	best := math.Inf(1)
	for i := range resources {
		coord, ok := resources[i].Coordinate()
		if !ok {
			continue
		}
		if d := Distance(from, coord); d < best {
			best = d
			nearest = &resources[i]
		}
	}
	return nearest, nearest != nil
}

// Categories は "All" を先頭に、出現順で重複を除いたカテゴリ一覧を返す
func Categories(resources []model.Resource) []string {
	categories := []string{model.CategoryAll}
	seen := make(map[string]struct{})
	for _, r := range resources {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		categories = append(categories, r.Category)
	}
	return categories
}
