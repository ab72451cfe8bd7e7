package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/domain/repository"
)

const citiesCollection = "cities"

// FirestoreResourcesRepository Firestoreの cities/{city}/resources からリソースを読み込むリポジトリ
type FirestoreResourcesRepository struct {
	client *firestore.Client
}

// NewFirestoreResourcesRepository 新しいFirestoreResourcesRepositoryインスタンスを作成
func NewFirestoreResourcesRepository(client *firestore.Client) repository.ResourcesRepository {
	return &FirestoreResourcesRepository{
		client: client,
	}
}

func (r *FirestoreResourcesRepository) ListCities(ctx context.Context) ([]string, error) {
	docs, err := r.client.Collection(citiesCollection).OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("都市一覧の取得に失敗しました: %w", err)
	}

	cities := make([]string, len(docs))
	for i, doc := range docs {
		cities[i] = doc.Ref.ID
	}
	return cities, nil
}

func (r *FirestoreResourcesRepository) GetByCity(ctx context.Context, city string) ([]model.Resource, error) {
	docs, err := r.client.Collection(citiesCollection).Doc(city).Collection("resources").
		OrderBy("position", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("都市 %s のリソース取得に失敗しました: %w", city, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("都市 %s のデータが見つかりません: %w", city, repository.ErrCityNotFound)
	}

	resources := make([]model.Resource, 0, len(docs))
	for _, doc := range docs {
		var resource model.Resource
		if err := doc.DataTo(&resource); err != nil {
			return nil, fmt.Errorf("リソース %s の変換に失敗しました: %w", doc.Ref.ID, err)
		}
		resources = append(resources, resource)
	}
	return resources, nil
}
