package service

import (
	"errors"
	"sync"

	"SafeHelp-App/internal/domain/helper"
	"SafeHelp-App/internal/domain/model"
)

// ErrLocationAlreadyResolved は位置情報の結果が2回以上届いた場合のエラー
var ErrLocationAlreadyResolved = errors.New("位置情報は既に確定しています")

// SelectionController はUIセッションの選択状態を保持し、状態遷移を管理する
type SelectionController struct {
	mu        sync.Mutex
	resources []model.Resource
	fallback  model.LatLng
	state     model.SelectionState
}

// NewSelectionController は新しいSelectionControllerインスタンスを作成
func NewSelectionController(resources []model.Resource, fallback model.LatLng) *SelectionController {
	return &SelectionController{
		resources: resources,
		fallback:  fallback,
		state:     model.NewSelectionState(),
	}
}

// OnLocationResolved は位置情報取得の結果を反映する
// coordがnilまたは不正な座標の場合は取得失敗として扱い、既定の地図中心にフォールバックする
// 確定後の呼び出しは状態を変更せずErrLocationAlreadyResolvedを返す
func (c *SelectionController) OnLocationResolved(coord *model.LatLng) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.LocationPhase != model.LocationPending {
		return ErrLocationAlreadyResolved
	}

	if coord == nil || !coord.Valid() {
		fallback := c.fallback
		c.state.LocationError = true
		c.state.MapCenter = &fallback
		c.state.LocationPhase = model.LocationFailed
		return nil
	}

	location := *coord
	center := *coord
	c.state.UserLocation = &location
	c.state.MapCenter = &center
	c.state.LocationPhase = model.LocationResolved
	return nil
}

// SelectCategory はカテゴリを選択し、利用者位置が分かっていれば最寄りのリソースへ地図中心を移す
// 該当リソースがない場合や位置情報が未確定の場合、地図中心は変更しない
func (c *SelectionController) SelectCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SelectedCategory = category
	if c.state.UserLocation == nil {
		return
	}

	matches := helper.FilterByCategory(c.resources, category)
	nearest, ok := helper.Nearest(matches, *c.state.UserLocation)
	if !ok {
		return
	}
	center, _ := nearest.Coordinate()
	c.state.MapCenter = &center
}

// CurrentView は現在の状態から表示用の射影を毎回計算して返す
func (c *SelectionController) CurrentView() model.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := helper.FilterByCategory(c.resources, c.state.SelectedCategory)
	return model.View{
		OrderedResources: helper.AnnotateAndSort(filtered, c.state.UserLocation),
		MapCenter:        copyLatLng(c.state.MapCenter),
		LocationError:    c.state.LocationError,
		SelectedCategory: c.state.SelectedCategory,
		UserLocation:     copyLatLng(c.state.UserLocation),
	}
}

// State は現在の選択状態のコピーを返す
func (c *SelectionController) State() model.SelectionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.state
	state.UserLocation = copyLatLng(c.state.UserLocation)
	state.MapCenter = copyLatLng(c.state.MapCenter)
	return state
}

func copyLatLng(l *model.LatLng) *model.LatLng {
	if l == nil {
		return nil
	}
	v := *l
	return &v
}
