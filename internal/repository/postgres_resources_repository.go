package repository

import (
	"context"
	"database/sql"
	"fmt"

	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/domain/repository"
	"SafeHelp-App/internal/infrastructure/database"
)

type PostgresResourcesRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresResourcesRepository(client *database.PostgreSQLClient) repository.ResourcesRepository {
	return &PostgresResourcesRepository{
		client: client,
	}
}

// ResourceRow resourcesテーブルの1行
type ResourceRow struct {
	Name          string
	Address       sql.NullString
	Category      string
	OpenHours     sql.NullString
	Contact       sql.NullString
	YouthFriendly sql.NullBool
	Lat           sql.NullFloat64
	Lng           sql.NullFloat64
}

// ToResource ResourceRowをmodel.Resourceに変換
func (rr *ResourceRow) ToResource() model.Resource {
	r := model.Resource{
		Name:          rr.Name,
		Address:       rr.Address.String,
		Category:      rr.Category,
		OpenHours:     rr.OpenHours.String,
		Contact:       rr.Contact.String,
		YouthFriendly: rr.YouthFriendly.Valid && rr.YouthFriendly.Bool,
	}
	if rr.Lat.Valid {
		lat := rr.Lat.Float64
		r.Lat = &lat
	}
	if rr.Lng.Valid {
		lng := rr.Lng.Float64
		r.Lng = &lng
	}
	return r
}

func (r *PostgresResourcesRepository) ListCities(ctx context.Context) ([]string, error) {
	rows, err := r.client.DB.QueryContext(ctx, `SELECT DISTINCT city FROM resources ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("都市一覧の取得失敗: %w", err)
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("都市データスキャンエラー: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}
	return cities, nil
}

func (r *PostgresResourcesRepository) GetByCity(ctx context.Context, city string) ([]model.Resource, error) {
	query := `
		SELECT name, address, category, open_hours, contact, youth_friendly, lat, lng
		FROM resources
		WHERE city = $1
		ORDER BY position
	`

	rows, err := r.client.DB.QueryContext(ctx, query, city)
	if err != nil {
		return nil, fmt.Errorf("都市 %s のリソース取得失敗: %w", city, err)
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		var row ResourceRow
		err := rows.Scan(&row.Name, &row.Address, &row.Category, &row.OpenHours,
			&row.Contact, &row.YouthFriendly, &row.Lat, &row.Lng)
		if err != nil {
			return nil, fmt.Errorf("リソースデータスキャンエラー: %w", err)
		}
		resources = append(resources, row.ToResource())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	if len(resources) == 0 {
		return nil, fmt.Errorf("都市 %s のデータが見つかりません: %w", city, repository.ErrCityNotFound)
	}
	return resources, nil
}
