// Package index は都市ごとのリソースをR-Treeで索引し、半径検索を提供する
package index

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"

	"SafeHelp-App/internal/domain/helper"
	"SafeHelp-App/internal/domain/model"
)

const (
	tolerance   = 0.0001
	minChildren = 4
	maxChildren = 16
	dimensions  = 2
	milesPerDeg = model.EarthRadiusKm * model.KmToMiles * math.Pi / 180
)

// spatialResource はrtreego.Spatialを実装するためのラッパー
type spatialResource struct {
	position int
	coord    model.LatLng
	rect     *rtreego.Rect
}

func (s *spatialResource) Bounds() *rtreego.Rect {
	return s.rect
}

// Match は半径検索の結果
type Match struct {
	Position int                     `json:"position"`
	Resource model.AnnotatedResource `json:"resource"`
}

// ResourceIndex は1都市分のリソースに対するR-Tree索引
type ResourceIndex struct {
	mu        sync.RWMutex
	tree      *rtreego.Rtree
	resources []model.Resource
}

// NewResourceIndex はリソース一覧から索引を構築する
// 座標が欠損したリソースは索引に含めない
func NewResourceIndex(resources []model.Resource) *ResourceIndex {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for i := range resources {
		coord, ok := resources[i].Coordinate()
		if !ok {
			continue
		}
		p := rtreego.Point{coord.Lat, coord.Lng}
		tree.Insert(&spatialResource{position: i, coord: coord, rect: p.ToRect(tolerance)})
	}

	return &ResourceIndex{
		tree:      tree,
		resources: resources,
	}
}

// Size は索引済みのリソース数を返す
func (x *ResourceIndex) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.tree.Size()
}

// WithinRadius は中心から半径（マイル）以内のリソースを距離の昇順で返す
// 同距離の場合はデータセット内の順序を保つ
func (x *ResourceIndex) WithinRadius(center model.LatLng, radiusMiles float64) ([]Match, error) {
	if radiusMiles <= 0 || math.IsNaN(radiusMiles) {
		return nil, fmt.Errorf("半径は正の値である必要があります: %v", radiusMiles)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	boxes, err := searchBoxes(center, radiusMiles)
	if err != nil {
		return nil, err
	}

	var candidates []rtreego.Spatial
	for _, box := range boxes {
		candidates = append(candidates, x.tree.SearchIntersect(box)...)
	}

	matches := make([]Match, 0, len(candidates))
	seen := make(map[int]bool, len(candidates))
	for _, candidate := range candidates {
		item, ok := candidate.(*spatialResource)
		if !ok || seen[item.position] {
			continue
		}
		seen[item.position] = true
		d := helper.Distance(center, item.coord)
		if d > radiusMiles {
			continue
		}
		matches = append(matches, Match{
			Position: item.position,
			Resource: model.AnnotatedResource{Resource: x.resources[item.position], Distance: &d},
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		di, dj := *matches[i].Resource.Distance, *matches[j].Resource.Distance
		if di != dj {
			return di < dj
		}
		return matches[i].Position < matches[j].Position
	})
	return matches, nil
}

// searchBoxes は中心から半径以内の点をすべて含む緯度経度の矩形を返す
// 経度方向の半幅は asin(sin r / cos φ)、極を含む場合は全経度。±180°をまたぐ場合は2つに分割する
func searchBoxes(center model.LatLng, radiusMiles float64) ([]*rtreego.Rect, error) {
	latDeg := radiusMiles / milesPerDeg
	minLat := math.Max(center.Lat-latDeg, -90)
	maxLat := math.Min(center.Lat+latDeg, 90)

	minLng, maxLng := -180.0, 180.0
	r := radiusMiles / (model.EarthRadiusKm * model.KmToMiles)
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	if r < math.Pi/2 && math.Sin(r) < cosLat {
		lngDeg := math.Asin(math.Sin(r)/cosLat) * 180 / math.Pi
		minLng, maxLng = center.Lng-lngDeg, center.Lng+lngDeg
	}

	var ranges [][2]float64
	switch {
	case maxLng-minLng >= 360:
		ranges = [][2]float64{{-180, 180}}
	case minLng < -180:
		ranges = [][2]float64{{minLng + 360, 180}, {-180, maxLng}}
	case maxLng > 180:
		ranges = [][2]float64{{minLng, 180}, {-180, maxLng - 360}}
	default:
		ranges = [][2]float64{{minLng, maxLng}}
	}

	boxes := make([]*rtreego.Rect, 0, len(ranges))
	for _, lng := range ranges {
		box, err := rtreego.NewRect(
			rtreego.Point{minLat - tolerance, lng[0] - tolerance},
			[]float64{maxLat - minLat + 2*tolerance, lng[1] - lng[0] + 2*tolerance},
		)
		if err != nil {
			return nil, fmt.Errorf("検索範囲の作成に失敗: %w", err)
		}
		boxes = append(boxes, box)
	}
	return boxes, nil
}
