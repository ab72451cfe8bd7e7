package maps

import (
	"fmt"
	"net/url"
	"strconv"

	"SafeHelp-App/internal/domain/model"
)

const directionsBaseURL = "https://www.google.com/maps/dir/"

// DirectionsURL は現在地からリソースまでの徒歩経路を開くGoogle MapsのURLを構築する
func DirectionsURL(origin, destination model.LatLng) string {
	params := url.Values{}
	params.Set("api", "1")
	params.Set("origin", formatLatLng(origin))
	params.Set("destination", formatLatLng(destination))
	params.Set("travelmode", "walking")

	return fmt.Sprintf("%s?%s", directionsBaseURL, params.Encode())
}

func formatLatLng(l model.LatLng) string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}
