package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/domain/repository"
)

// JSONResourcesRepository resourcesByCity.json 形式のファイルからリソースを読み込むリポジトリ
// {"nashua-nh": [{...}, ...], "manchester-nh": [...]}
type JSONResourcesRepository struct {
	byCity map[string][]model.Resource
}

// NewJSONResourcesRepository ファイルパスからリポジトリを作成
func NewJSONResourcesRepository(path string) (repository.ResourcesRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("データセットファイルのオープン失敗: %w", err)
	}
	defer f.Close()

	return NewJSONResourcesRepositoryFromReader(f)
}

// NewJSONResourcesRepositoryFromReader io.Readerからリポジトリを作成
func NewJSONResourcesRepositoryFromReader(r io.Reader) (repository.ResourcesRepository, error) {
	var byCity map[string][]model.Resource
	if err := json.NewDecoder(r).Decode(&byCity); err != nil {
		return nil, fmt.Errorf("データセットのJSONデコード失敗: %w", err)
	}
	return &JSONResourcesRepository{byCity: byCity}, nil
}

func (r *JSONResourcesRepository) ListCities(ctx context.Context) ([]string, error) {
	cities := make([]string, 0, len(r.byCity))
	for city := range r.byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities, nil
}

func (r *JSONResourcesRepository) GetByCity(ctx context.Context, city string) ([]model.Resource, error) {
	resources, ok := r.byCity[city]
	if !ok {
		return nil, fmt.Errorf("都市 %s のデータが見つかりません: %w", city, repository.ErrCityNotFound)
	}
	return resources, nil
}
