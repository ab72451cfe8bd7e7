package handler

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"SafeHelp-App/internal/domain/repository"
	"SafeHelp-App/internal/domain/service"
)

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// respondError はエラーの種類に応じたステータスコードとエラーボディを返す
func respondError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": verr.Error(),
		})
	case errors.Is(err, repository.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "session_not_found",
			"message": err.Error(),
		})
	case errors.Is(err, repository.ErrCityNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "city_not_found",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrLocationAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "location_already_resolved",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}

func validateLatLng(field string, lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return &ValidationError{Field: field + ".lat", Message: "緯度は-90から90の範囲で指定してください"}
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return &ValidationError{Field: field + ".lng", Message: "経度は-180から180の範囲で指定してください"}
	}
	return nil
}
