// Package presenter は表示用の射影（View）をリスト表示と地図表示のペイロードに変換する
package presenter

import (
	"fmt"

	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/infrastructure/maps"
)

// ListingCard リスト表示の1枚分
type ListingCard struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Category      string `json:"category"`
	Hours         string `json:"hours"`
	Contact       string `json:"contact"`
	YouthFriendly string `json:"youth_friendly"`
	Distance      string `json:"distance,omitempty"`
	MapsURL       string `json:"maps_url"`
	DirectionsURL string `json:"directions_url,omitempty"`
}

// NewListingCard は注釈付きリソースからカードを作成する
// originがあり座標を持つリソースには経路URLを付ける
func NewListingCard(r model.AnnotatedResource, origin *model.LatLng) ListingCard {
	card := ListingCard{
		Name:          r.Name,
		Address:       r.Address,
		Category:      r.Category,
		Hours:         r.OpenHours,
		Contact:       r.Contact,
		YouthFriendly: YesNo(r.YouthFriendly),
		MapsURL:       maps.SearchURL(r.Address),
	}
	if r.HasDistance() {
		card.Distance = FormatMiles(*r.Distance)
	}
	if coord, ok := r.Coordinate(); ok && origin != nil {
		card.DirectionsURL = maps.DirectionsURL(*origin, coord)
	}
	return card
}

// Listing は表示順のままカード一覧を作成する
func Listing(view model.View) []ListingCard {
	cards := make([]ListingCard, len(view.OrderedResources))
	for i, r := range view.OrderedResources {
		cards[i] = NewListingCard(r, view.UserLocation)
	}
	return cards
}

// FormatMiles 距離を小数1桁のマイル表記にする（例: "3.4 miles"）
func FormatMiles(miles float64) string {
	return fmt.Sprintf("%.1f miles", miles)
}

func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
