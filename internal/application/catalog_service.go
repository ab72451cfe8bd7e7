package application

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"SafeHelp-App/internal/domain/helper"
	"SafeHelp-App/internal/domain/index"
	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/domain/repository"
)

// CatalogService 都市ごとのリソースデータセットへの読み取り専用アクセスを提供するサービス
type CatalogService interface {
	// Cities 利用可能な都市一覧を取得
	Cities(ctx context.Context) ([]model.City, error)

	// Resources 都市のリソース一覧をデータセット順で取得
	Resources(ctx context.Context, city string) ([]model.Resource, error)

	// Categories 都市のカテゴリ一覧を取得（先頭は常に"All"）
	Categories(ctx context.Context, city string) ([]string, error)

	// Nearby 中心から半径（マイル）以内のリソースを距離順で取得
	Nearby(ctx context.Context, city string, center model.LatLng, radiusMiles float64) ([]index.Match, error)
}

type cityDataset struct {
	resources []model.Resource
	index     *index.ResourceIndex
}

// catalogServiceImpl CatalogServiceの実装
// 都市ごとのデータセットは初回アクセス時に読み込み、以降はキャッシュを返す
type catalogServiceImpl struct {
	repo   repository.ResourcesRepository
	logger *zap.Logger

	mu       sync.Mutex
	datasets map[string]*cityDataset
}

// NewCatalogService CatalogServiceの新しいインスタンスを作成
func NewCatalogService(repo repository.ResourcesRepository, logger *zap.Logger) CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &catalogServiceImpl{
		repo:     repo,
		logger:   logger,
		datasets: make(map[string]*cityDataset),
	}
}

func (s *catalogServiceImpl) Cities(ctx context.Context) ([]model.City, error) {
	slugs, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("都市一覧の取得失敗: %w", err)
	}

	cities := make([]model.City, len(slugs))
	for i, slug := range slugs {
		cities[i] = model.City{Slug: slug, Name: model.CityDisplayName(slug)}
	}
	return cities, nil
}

func (s *catalogServiceImpl) Resources(ctx context.Context, city string) ([]model.Resource, error) {
	ds, err := s.dataset(ctx, city)
	if err != nil {
		return nil, err
	}
	return ds.resources, nil
}

func (s *catalogServiceImpl) Categories(ctx context.Context, city string) ([]string, error) {
	ds, err := s.dataset(ctx, city)
	if err != nil {
		return nil, err
	}
	return helper.Categories(ds.resources), nil
}

func (s *catalogServiceImpl) Nearby(ctx context.Context, city string, center model.LatLng, radiusMiles float64) ([]index.Match, error) {
	ds, err := s.dataset(ctx, city)
	if err != nil {
		return nil, err
	}
	return ds.index.WithinRadius(center, radiusMiles)
}

func (s *catalogServiceImpl) dataset(ctx context.Context, city string) (*cityDataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ds, ok := s.datasets[city]; ok {
		return ds, nil
	}

	resources, err := s.repo.GetByCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("都市 %s のデータセット読み込み失敗: %w", city, err)
	}

	missing := 0
	for i := range resources {
		if resources[i].Category == "" {
			s.logger.Warn("カテゴリが空のリソース",
				zap.String("city", city),
				zap.Int("position", i),
				zap.String("name", resources[i].Name))
		}
		if !resources[i].HasCoordinate() {
			missing++
		}
	}

	ds := &cityDataset{
		resources: resources,
		index:     index.NewResourceIndex(resources),
	}
	s.datasets[city] = ds

	s.logger.Info("データセット読み込み完了",
		zap.String("city", city),
		zap.Int("resources", len(resources)),
		zap.Int("indexed", ds.index.Size()),
		zap.Int("missing_coordinates", missing))
	return ds, nil
}
