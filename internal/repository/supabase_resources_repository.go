package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"

	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/domain/repository"
	"SafeHelp-App/internal/infrastructure/database"
)

// supabasePageSize 1リクエストあたりの取得件数
const supabasePageSize = 1000

type SupabaseResourcesRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseResourcesRepository(client *database.SupabaseClient) repository.ResourcesRepository {
	return &SupabaseResourcesRepository{
		client: client,
	}
}

// supabaseResource PostgRESTのレスポンス行
type supabaseResource struct {
	City     string `json:"city"`
	Position int    `json:"position"`
	model.Resource
}

func (r *SupabaseResourcesRepository) ListCities(ctx context.Context) ([]string, error) {
	rows, err := fetchAllPages(ctx, supabasePageSize, func(from, to int) ([]byte, error) {
		data, _, err := r.client.GetClient().From("resources").
			Select("city", "", false).
			Order("city", &postgrest.OrderOpts{Ascending: true}).
			Order("position", &postgrest.OrderOpts{Ascending: true}).
			Range(from, to, "").
			Execute()
		return data, err
	})
	if err != nil {
		return nil, fmt.Errorf("都市一覧の取得失敗: %w", err)
	}

	// city順に並んでいるので隣接する重複だけ除けばよい
	var cities []string
	for _, row := range rows {
		if len(cities) > 0 && cities[len(cities)-1] == row.City {
			continue
		}
		cities = append(cities, row.City)
	}
	return cities, nil
}

func (r *SupabaseResourcesRepository) GetByCity(ctx context.Context, city string) ([]model.Resource, error) {
	rows, err := fetchAllPages(ctx, supabasePageSize, func(from, to int) ([]byte, error) {
		data, _, err := r.client.GetClient().From("resources").
			Select("*", "", false).
			Eq("city", city).
			Order("position", &postgrest.OrderOpts{Ascending: true}).
			Range(from, to, "").
			Execute()
		return data, err
	})
	if err != nil {
		return nil, fmt.Errorf("都市 %s のリソース取得失敗: %w", city, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("都市 %s のデータが見つかりません: %w", city, repository.ErrCityNotFound)
	}

	resources := make([]model.Resource, len(rows))
	for i, row := range rows {
		resources[i] = row.Resource
	}
	return resources, nil
}

// fetchAllPages 空のページが返るまでRangeをずらして全行を取得する
// サーバー側の上限でページが短く返っても、実際に受け取った件数だけ進める
func fetchAllPages(ctx context.Context, pageSize int, fetch func(from, to int) ([]byte, error)) ([]supabaseResource, error) {
	var all []supabaseResource
	from := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := fetch(from, from+pageSize-1)
		if err != nil {
			return nil, err
		}

		var page []supabaseResource
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("リソースデータのJSONアンマーシャル失敗: %w", err)
		}
		if len(page) == 0 {
			return all, nil
		}

		all = append(all, page...)
		from += len(page)
	}
}
