package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"SafeHelp-App/internal/domain/model"
)

// データセットの読み込み元
const (
	SourceFile      = "file"
	SourcePostgres  = "postgres"
	SourceSupabase  = "supabase"
	SourceFirestore = "firestore"
)

// Config アプリケーション設定
type Config struct {
	Port          string
	GinMode       string
	DatasetSource string
	DatasetPath   string
	DefaultCity   string
	Fallback      model.LatLng
	MapZoom       int
	SessionTTL    time.Duration
	SubmitFormURL string

	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseDBPassword string
	FirestoreProjectID string
}

// LoadEnv .envファイルを読み込む。存在しない場合はシステムの環境変数を使用する
func LoadEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load 環境変数から設定を読み込む
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            os.Getenv("GIN_MODE"),
		DatasetSource:      strings.ToLower(getEnv("DATASET_SOURCE", SourceFile)),
		DatasetPath:        getEnv("DATASET_PATH", "data/resourcesByCity.json"),
		DefaultCity:        getEnv("DEFAULT_CITY", model.DefaultCity),
		Fallback:           model.DefaultFallbackCenter,
		MapZoom:            model.DefaultMapZoom,
		SessionTTL:         30 * time.Minute,
		SubmitFormURL:      os.Getenv("SUBMIT_FORM_URL"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseDBPassword: os.Getenv("SUPABASE_DB_PASSWORD"),
		FirestoreProjectID: os.Getenv("FIRESTORE_PROJECT_ID"),
	}

	var err error
	if cfg.Fallback.Lat, err = getFloat("FALLBACK_LAT", cfg.Fallback.Lat); err != nil {
		return nil, err
	}
	if cfg.Fallback.Lng, err = getFloat("FALLBACK_LNG", cfg.Fallback.Lng); err != nil {
		return nil, err
	}
	if v := os.Getenv("MAP_ZOOM"); v != "" {
		if cfg.MapZoom, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("MAP_ZOOMの形式が正しくありません: %w", err)
		}
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if cfg.SessionTTL, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("SESSION_TTLの形式が正しくありません: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 設定値の整合性をチェック
func (c *Config) Validate() error {
	if math.IsNaN(c.Fallback.Lat) || c.Fallback.Lat < -90 || c.Fallback.Lat > 90 {
		return fmt.Errorf("FALLBACK_LATは-90から90の範囲で指定してください")
	}
	if math.IsNaN(c.Fallback.Lng) || c.Fallback.Lng < -180 || c.Fallback.Lng > 180 {
		return fmt.Errorf("FALLBACK_LNGは-180から180の範囲で指定してください")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTLは正の値である必要があります")
	}

	switch c.DatasetSource {
	case SourceFile:
		if c.DatasetPath == "" {
			return fmt.Errorf("DATASET_PATH環境変数が設定されていません")
		}
	case SourcePostgres:
		if c.SupabaseURL == "" || c.SupabaseDBPassword == "" {
			return fmt.Errorf("SUPABASE_URLとSUPABASE_DB_PASSWORD環境変数が必要です")
		}
	case SourceSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
			return fmt.Errorf("SUPABASE_URLとSUPABASE_ANON_KEY環境変数が必要です")
		}
	case SourceFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID環境変数が設定されていません")
		}
	default:
		return fmt.Errorf("未対応のDATASET_SOURCEです: %s", c.DatasetSource)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%sの形式が正しくありません: %w", key, err)
	}
	return f, nil
}
