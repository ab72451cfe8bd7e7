package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/presenter"
	"SafeHelp-App/internal/usecase"
)

// SessionHandler UIセッションに関するHTTPハンドラー
type SessionHandler struct {
	sessions usecase.SessionUseCase
	mapZoom  int
}

// NewSessionHandler SessionHandlerの新しいインスタンスを作成
func NewSessionHandler(sessions usecase.SessionUseCase, mapZoom int) *SessionHandler {
	if mapZoom <= 0 {
		mapZoom = model.DefaultMapZoom
	}
	return &SessionHandler{
		sessions: sessions,
		mapZoom:  mapZoom,
	}
}

// CreateSessionRequest POST /sessions のリクエスト
type CreateSessionRequest struct {
	City string `json:"city"`
}

// LocationRequest POST /sessions/:id/location のリクエスト
// 取得失敗時は {"error": "denied"} のようにerrorを指定する
type LocationRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

// CategoryRequest POST /sessions/:id/category のリクエスト
type CategoryRequest struct {
	Category string `json:"category"`
}

// SessionViewResponse セッションの表示状態
type SessionViewResponse struct {
	SessionID        string                  `json:"session_id"`
	City             string                  `json:"city"`
	Listing          []presenter.ListingCard `json:"listing"`
	Map              presenter.MapView       `json:"map"`
	LocationError    bool                    `json:"location_error"`
	LocationStatus   string                  `json:"location_status"`
	SelectedCategory string                  `json:"selected_category"`
}

// CreateSession POST /sessions - 都市を指定してセッションを開始
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}
	if req.City == "" {
		respondError(c, &ValidationError{Field: "city", Message: "cityは必須です"})
		return
	}

	session, _, err := h.sessions.CreateSession(c.Request.Context(), req.City)
	if err != nil {
		respondError(c, err)
		return
	}
	h.renderView(c, http.StatusCreated, session.ID)
}

// ResolveLocation POST /sessions/:id/location - 位置情報の結果を通知
func (h *SessionHandler) ResolveLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	coord, err := req.toLatLng()
	if err != nil {
		respondError(c, err)
		return
	}

	id := c.Param("id")
	if _, err := h.sessions.ResolveLocation(c.Request.Context(), id, coord); err != nil {
		respondError(c, err)
		return
	}
	h.renderView(c, http.StatusOK, id)
}

// SelectCategory POST /sessions/:id/category - カテゴリを選択
func (h *SessionHandler) SelectCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	id := c.Param("id")
	if _, err := h.sessions.SelectCategory(c.Request.Context(), id, req.Category); err != nil {
		respondError(c, err)
		return
	}
	h.renderView(c, http.StatusOK, id)
}

// GetView GET /sessions/:id/view
func (h *SessionHandler) GetView(c *gin.Context) {
	h.renderView(c, http.StatusOK, c.Param("id"))
}

// GetMapGeoJSON GET /sessions/:id/map.geojson
func (h *SessionHandler) GetMapGeoJSON(c *gin.Context) {
	_, view, err := h.sessions.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	fc := presenter.NewMapView(view, h.mapZoom, false).GeoJSON()
	data, err := fc.MarshalJSON()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

// EndSession DELETE /sessions/:id
func (h *SessionHandler) EndSession(c *gin.Context) {
	if err := h.sessions.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) renderView(c *gin.Context, status int, id string) {
	session, view, err := h.sessions.View(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	recentered := session.MarkRendered(view.MapCenter)
	c.JSON(status, SessionViewResponse{
		SessionID:        session.ID,
		City:             session.City,
		Listing:          presenter.Listing(view),
		Map:              presenter.NewMapView(view, h.mapZoom, recentered),
		LocationError:    view.LocationError,
		LocationStatus:   session.Controller.State().LocationPhase.String(),
		SelectedCategory: view.SelectedCategory,
	})
}

func (r *LocationRequest) toLatLng() (*model.LatLng, error) {
	if r.Error != "" {
		return nil, nil
	}
	if r.Lat == nil || r.Lng == nil {
		return nil, &ValidationError{Field: "lat,lng", Message: "latとlng、またはerrorを指定してください"}
	}
	if err := validateLatLng("location", *r.Lat, *r.Lng); err != nil {
		return nil, err
	}
	return &model.LatLng{Lat: *r.Lat, Lng: *r.Lng}, nil
}
