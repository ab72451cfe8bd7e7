package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"SafeHelp-App/internal/config"
	"SafeHelp-App/internal/domain/repository"
	"SafeHelp-App/internal/infrastructure/database"
	"SafeHelp-App/internal/infrastructure/firestore"
	repoImpl "SafeHelp-App/internal/repository"
)

// loadConfig は.envを読み込んだ上で環境変数から設定を作成する
func loadConfig(logger *zap.Logger) (*config.Config, error) {
	var loaded bool
	if envFile != "" {
		loaded = config.LoadEnv(envFile)
	} else {
		loaded = config.LoadEnv()
	}
	if !loaded {
		logger.Debug(".envファイルが見つからないため、システムの環境変数を使用します")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("設定の読み込み失敗: %w", err)
	}
	if city != "" {
		cfg.DefaultCity = city
	}
	return cfg, nil
}

func newLogger(ginMode string) (*zap.Logger, error) {
	if ginMode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newResourcesRepository はDATASET_SOURCEに応じたリポジトリを作成する
// 戻り値のcloseは接続の後始末に使う
func newResourcesRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.ResourcesRepository, func(), error) {
	noop := func() {}

	switch cfg.DatasetSource {
	case config.SourceFile:
		repo, err := repoImpl.NewJSONResourcesRepository(cfg.DatasetPath)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("データセットをファイルから読み込み", zap.String("path", cfg.DatasetPath))
		return repo, noop, nil

	case config.SourcePostgres:
		client, err := database.NewPostgreSQLClient(cfg.SupabaseURL, cfg.SupabaseDBPassword)
		if err != nil {
			return nil, noop, fmt.Errorf("PostgreSQLクライアント初期化失敗: %w", err)
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn("PostgreSQL切断エラー", zap.Error(err))
			}
		}
		if err := client.HealthCheck(ctx); err != nil {
			closeFn()
			return nil, noop, fmt.Errorf("PostgreSQLヘルスチェック失敗: %w", err)
		}
		logger.Info("PostgreSQLに接続しました")
		return repoImpl.NewPostgresResourcesRepository(client), closeFn, nil

	case config.SourceSupabase:
		client, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return nil, noop, fmt.Errorf("Supabaseクライアント初期化失敗: %w", err)
		}
		if err := client.HealthCheck(); err != nil {
			return nil, noop, fmt.Errorf("Supabaseヘルスチェック失敗: %w", err)
		}
		logger.Info("Supabaseに接続しました", zap.String("url", client.URL()))
		return repoImpl.NewSupabaseResourcesRepository(client), noop, nil

	case config.SourceFirestore:
		client, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("Firestoreクライアント初期化失敗: %w", err)
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn("Firestore切断エラー", zap.Error(err))
			}
		}
		return repoImpl.NewFirestoreResourcesRepository(client.GetClient()), closeFn, nil
	}

	return nil, noop, fmt.Errorf("未対応のDATASET_SOURCEです: %s", cfg.DatasetSource)
}
