package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SafeHelp-App/internal/application"
	"SafeHelp-App/internal/domain/model"
	repoImpl "SafeHelp-App/internal/repository"
	"SafeHelp-App/internal/usecase"
)

const testDataset = `{
  "nashua-nh": [
    {"name": "Far Pantry", "address": "9 Amherst St, Nashua, NH", "category": "Food",
     "open_hours": "Sat 9am-12pm", "contact": "(603) 555-0102", "youth_friendly": false,
     "lat": 42.8000, "lng": -71.5000},
    {"name": "Shelter", "address": "7 Main St, Nashua, NH", "category": "Shelter",
     "open_hours": "24/7", "contact": "(603) 555-0101", "youth_friendly": true,
     "lat": 42.7650, "lng": -71.4680},
    {"name": "Near Pantry", "address": "2 Quincy St, Nashua, NH", "category": "Food",
     "open_hours": "Mon-Fri 11am-1pm", "contact": "(603) 555-0100", "youth_friendly": true,
     "lat": 42.7640, "lng": -71.4672}
  ]
}`

const testFormURL = "https://forms.example.com/submit"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resourcesRepo, err := repoImpl.NewJSONResourcesRepositoryFromReader(strings.NewReader(testDataset))
	require.NoError(t, err)

	catalog := application.NewCatalogService(resourcesRepo, nil)
	sessions := usecase.NewSessionUseCase(catalog, repoImpl.NewMemorySessionsRepository(),
		model.DefaultFallbackCenter, 30*time.Minute, nil)

	return NewRouter(RouterConfig{
		Catalog:       NewCatalogHandler(catalog),
		Sessions:      NewSessionHandler(sessions, model.DefaultMapZoom),
		SubmitFormURL: testFormURL,
	})
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) SessionViewResponse {
	t.Helper()
	var resp SessionViewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func listingNames(resp SessionViewResponse) []string {
	names := make([]string, len(resp.Listing))
	for i, card := range resp.Listing {
		names[i] = card.Name
	}
	return names
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestCatalogEndpoints(t *testing.T) {
	r := setupRouter(t)

	t.Run("都市一覧", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/cities", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var cities []model.City
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cities))
		assert.Equal(t, []model.City{{Slug: "nashua-nh", Name: "NASHUA NH"}}, cities)
	})

	t.Run("カテゴリ一覧", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/cities/nashua-nh/categories", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Categories []string `json:"categories"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"All", "Food", "Shelter"}, body.Categories)
	})

	t.Run("未知の都市は404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/cities/boston-ma/categories", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "city_not_found", errorCode(t, w))
	})

	t.Run("周辺検索", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/cities/nashua-nh/resources/nearby?lat=42.76&lng=-71.47&radius_miles=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp NearbyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Results, 2)
		assert.Equal(t, "Near Pantry", resp.Results[0].Card.Name)
		assert.Equal(t, 2, resp.Results[0].Position)
		assert.Equal(t, "0.3 miles", resp.Results[0].Card.Distance)
		assert.Equal(t, "Shelter", resp.Results[1].Card.Name)
	})

	t.Run("周辺検索のパラメータ不正は400", func(t *testing.T) {
		for _, q := range []string{
			"",
			"?lat=abc&lng=-71.47",
			"?lat=95&lng=-71.47",
			"?lat=42.76&lng=-71.47&radius_miles=-1",
		} {
			w := doJSON(t, r, http.MethodGet, "/cities/nashua-nh/resources/nearby"+q, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
	})
}

func TestSessionFlow_LocationGranted(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", CreateSessionRequest{City: "nashua-nh"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeView(t, w)
	assert.NotEmpty(t, created.SessionID)
	assert.Equal(t, "pending", created.LocationStatus)
	assert.Equal(t, []string{"Far Pantry", "Shelter", "Near Pantry"}, listingNames(created))
	assert.Nil(t, created.Map.Center)
	assert.Empty(t, created.Listing[0].Distance)

	base := "/sessions/" + created.SessionID
	lat, lng := 42.76, -71.47
	w = doJSON(t, r, http.MethodPost, base+"/location", LocationRequest{Lat: &lat, Lng: &lng})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	located := decodeView(t, w)
	assert.Equal(t, "resolved", located.LocationStatus)
	assert.Equal(t, []string{"Near Pantry", "Shelter", "Far Pantry"}, listingNames(located))
	assert.True(t, located.Map.Recentered)
	require.NotNil(t, located.Map.UserMarker)

	w = doJSON(t, r, http.MethodPost, base+"/category", CategoryRequest{Category: "Food"})
	require.Equal(t, http.StatusOK, w.Code)
	food := decodeView(t, w)
	assert.Equal(t, []string{"Near Pantry", "Far Pantry"}, listingNames(food))
	assert.Equal(t, model.LatLng{Lat: 42.7640, Lng: -71.4672}, *food.Map.Center)
	assert.True(t, food.Map.Recentered)

	w = doJSON(t, r, http.MethodGet, base+"/view", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeView(t, w).Map.Recentered)

	w = doJSON(t, r, http.MethodPost, base+"/location", LocationRequest{Error: "denied"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "location_already_resolved", errorCode(t, w))

	w = doJSON(t, r, http.MethodGet, base+"/map.geojson", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "FeatureCollection")

	w = doJSON(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, base+"/view", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session_not_found", errorCode(t, w))
}

func TestSessionFlow_LocationDenied(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", CreateSessionRequest{City: "nashua-nh"})
	require.Equal(t, http.StatusCreated, w.Code)
	base := "/sessions/" + decodeView(t, w).SessionID

	w = doJSON(t, r, http.MethodPost, base+"/location", LocationRequest{Error: "denied"})
	require.Equal(t, http.StatusOK, w.Code)
	denied := decodeView(t, w)
	assert.True(t, denied.LocationError)
	assert.Equal(t, "failed", denied.LocationStatus)
	assert.Equal(t, model.DefaultFallbackCenter, *denied.Map.Center)
	assert.Nil(t, denied.Map.UserMarker)

	w = doJSON(t, r, http.MethodPost, base+"/category", CategoryRequest{Category: "Food"})
	require.Equal(t, http.StatusOK, w.Code)
	food := decodeView(t, w)
	assert.Equal(t, []string{"Far Pantry", "Near Pantry"}, listingNames(food))
	assert.Equal(t, model.DefaultFallbackCenter, *food.Map.Center)
	assert.False(t, food.Map.Recentered)
	assert.Empty(t, food.Listing[0].Distance)
}

func TestSessionValidation(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", CreateSessionRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/sessions", CreateSessionRequest{City: "boston-ma"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/sessions", CreateSessionRequest{City: "nashua-nh"})
	require.Equal(t, http.StatusCreated, w.Code)
	base := "/sessions/" + decodeView(t, w).SessionID

	lat := 42.76
	w = doJSON(t, r, http.MethodPost, base+"/location", LocationRequest{Lat: &lat})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_parameter", errorCode(t, w))

	bad := 200.0
	w = doJSON(t, r, http.MethodPost, base+"/location", LocationRequest{Lat: &lat, Lng: &bad})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, base+"/category", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", errorCode(t, rec))

	w = doJSON(t, r, http.MethodPost, "/sessions/missing/category", CategoryRequest{Category: "Food"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitRedirect(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(t, r, http.MethodGet, "/submit", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, testFormURL, w.Header().Get("Location"))

	gin.SetMode(gin.TestMode)
	bare := gin.New()
	bare.GET("/submit", SubmitRedirect(""))
	w = doJSON(t, bare, http.MethodGet, "/submit", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
