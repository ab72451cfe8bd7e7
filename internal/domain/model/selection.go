package model

// LocationPhase 位置情報取得の状態
type LocationPhase int

const (
	LocationPending  LocationPhase = iota // 取得待ち
	LocationResolved                      // 取得成功
	LocationFailed                        // 取得失敗（拒否・非対応・タイムアウト）
)

func (p LocationPhase) String() string {
	switch p {
	case LocationResolved:
		return "resolved"
	case LocationFailed:
		return "failed"
	default:
		return "pending"
	}
}

// SelectionState UIセッション内の選択状態
type SelectionState struct {
	SelectedCategory string        `json:"selected_category"`
	UserLocation     *LatLng       `json:"user_location,omitempty"`
	MapCenter        *LatLng       `json:"map_center,omitempty"`
	LocationError    bool          `json:"location_error"`
	LocationPhase    LocationPhase `json:"-"`
}

// NewSelectionState 初期状態（カテゴリ"All"、位置情報なし）を作成
func NewSelectionState() SelectionState {
	return SelectionState{
		SelectedCategory: CategoryAll,
		LocationPhase:    LocationPending,
	}
}

// View 現在の状態から導出される表示用の射影
type View struct {
	OrderedResources []AnnotatedResource `json:"ordered_resources"`
	MapCenter        *LatLng             `json:"map_center,omitempty"`
	LocationError    bool                `json:"location_error"`
	SelectedCategory string              `json:"selected_category"`
	UserLocation     *LatLng             `json:"user_location,omitempty"`
}
