package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"SafeHelp-App/internal/application"
	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/presenter"
)

// DefaultNearbyRadiusMiles radius_miles未指定時の検索半径
const DefaultNearbyRadiusMiles = 5.0

// CatalogHandler 都市・カテゴリ・周辺検索のHTTPハンドラー
type CatalogHandler struct {
	catalog application.CatalogService
}

// NewCatalogHandler CatalogHandlerの新しいインスタンスを作成
func NewCatalogHandler(catalog application.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
	}
}

// NearbyResult 周辺検索の1件
type NearbyResult struct {
	Position int                   `json:"position"`
	Card     presenter.ListingCard `json:"card"`
	Location model.LatLng          `json:"location"`
}

// NearbyResponse 周辺検索のレスポンス
type NearbyResponse struct {
	City        string         `json:"city"`
	Center      model.LatLng   `json:"center"`
	RadiusMiles float64        `json:"radius_miles"`
	Results     []NearbyResult `json:"results"`
}

// ListCities GET /cities
func (h *CatalogHandler) ListCities(c *gin.Context) {
	cities, err := h.catalog.Cities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

// ListCategories GET /cities/:city/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context(), c.Param("city"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Nearby GET /cities/:city/resources/nearby?lat=&lng=&radius_miles=
func (h *CatalogHandler) Nearby(c *gin.Context) {
	city := c.Param("city")

	center, radius, err := parseNearbyQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	matches, err := h.catalog.Nearby(c.Request.Context(), city, center, radius)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]NearbyResult, len(matches))
	for i, m := range matches {
		location, _ := m.Resource.Coordinate()
		results[i] = NearbyResult{
			Position: m.Position,
			Card:     presenter.NewListingCard(m.Resource, &center),
			Location: location,
		}
	}

	c.JSON(http.StatusOK, NearbyResponse{
		City:        city,
		Center:      center,
		RadiusMiles: radius,
		Results:     results,
	})
}

func parseNearbyQuery(c *gin.Context) (model.LatLng, float64, error) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" || lngStr == "" {
		return model.LatLng{}, 0, &ValidationError{Field: "lat,lng", Message: "latとlngは必須です"}
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return model.LatLng{}, 0, &ValidationError{Field: "lat", Message: "latの値が不正です"}
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return model.LatLng{}, 0, &ValidationError{Field: "lng", Message: "lngの値が不正です"}
	}
	if err := validateLatLng("center", lat, lng); err != nil {
		return model.LatLng{}, 0, err
	}

	radius := DefaultNearbyRadiusMiles
	if s := c.Query("radius_miles"); s != "" {
		radius, err = strconv.ParseFloat(s, 64)
		if err != nil || radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
			return model.LatLng{}, 0, &ValidationError{Field: "radius_miles", Message: "radius_milesは正の数で指定してください"}
		}
	}
	return model.LatLng{Lat: lat, Lng: lng}, radius, nil
}
