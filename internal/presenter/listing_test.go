package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SafeHelp-App/internal/domain/model"
)

func TestNewListingCard(t *testing.T) {
	d := 3.4449
	r := model.AnnotatedResource{
		Resource: model.Resource{
			Name:          "Soup Kitchen",
			Address:       "2 Quincy St, Nashua, NH",
			Category:      "Food",
			OpenHours:     "Mon-Fri 11am-1pm",
			Contact:       "(603) 555-0100",
			YouthFriendly: true,
		},
		Distance: &d,
	}

	card := NewListingCard(r, nil)
	assert.Equal(t, "Soup Kitchen", card.Name)
	assert.Equal(t, "Mon-Fri 11am-1pm", card.Hours)
	assert.Equal(t, "Yes", card.YouthFriendly)
	assert.Equal(t, "3.4 miles", card.Distance)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=2%20Quincy%20St%2C%20Nashua%2C%20NH", card.MapsURL)

	r.Distance = nil
	r.YouthFriendly = false
	card = NewListingCard(r, nil)
	assert.Empty(t, card.Distance)
	assert.Equal(t, "No", card.YouthFriendly)
	assert.Empty(t, card.DirectionsURL)
}

func TestNewListingCard_DirectionsURL(t *testing.T) {
	origin := model.LatLng{Lat: 42.76, Lng: -71.47}
	located := model.AnnotatedResource{Resource: model.NewResource("Pantry", "Food", 42.7591, -71.4662)}
	card := NewListingCard(located, &origin)
	assert.Equal(t,
		"https://www.google.com/maps/dir/?api=1&destination=42.7591%2C-71.4662&origin=42.76%2C-71.47&travelmode=walking",
		card.DirectionsURL)

	missing := model.AnnotatedResource{Resource: model.Resource{Name: "Hotline"}}
	assert.Empty(t, NewListingCard(missing, &origin).DirectionsURL)
}

func TestFormatMiles(t *testing.T) {
	tests := []struct {
		miles float64
		want  string
	}{
		{0, "0.0 miles"},
		{0.04, "0.0 miles"},
		{3.45, "3.5 miles"},
		{12.0, "12.0 miles"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMiles(tt.miles))
	}
}

func TestListing_PreservesOrder(t *testing.T) {
	view := model.View{
		OrderedResources: []model.AnnotatedResource{
			{Resource: model.Resource{Name: "B"}},
			{Resource: model.Resource{Name: "A"}},
		},
	}
	cards := Listing(view)
	require.Len(t, cards, 2)
	assert.Equal(t, "B", cards[0].Name)
	assert.Equal(t, "A", cards[1].Name)

	assert.Empty(t, Listing(model.View{}))
}
