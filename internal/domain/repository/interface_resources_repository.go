package repository

import (
	"context"
	"errors"

	"SafeHelp-App/internal/domain/model"
)

// ErrCityNotFound は指定都市のデータセットが存在しない場合のエラー
var ErrCityNotFound = errors.New("都市が見つかりません")

// ResourcesRepository は都市ごとのリソースデータセットを読み込むリポジトリ
type ResourcesRepository interface {
	// ListCities はデータセットに含まれる都市スラッグを返す
	ListCities(ctx context.Context) ([]string, error)
	// GetByCity は指定都市のリソースをデータセット内の順序で返す
	GetByCity(ctx context.Context, city string) ([]model.Resource, error)
}
