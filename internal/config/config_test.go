package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SafeHelp-App/internal/domain/model"
)

func TestLoad(t *testing.T) {
	t.Run("既定値", func(t *testing.T) {
		t.Setenv("DATASET_SOURCE", "")
		t.Setenv("FALLBACK_LAT", "")
		t.Setenv("FALLBACK_LNG", "")
		t.Setenv("SESSION_TTL", "")
		t.Setenv("MAP_ZOOM", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, SourceFile, cfg.DatasetSource)
		assert.Equal(t, model.DefaultFallbackCenter, cfg.Fallback)
		assert.Equal(t, model.DefaultMapZoom, cfg.MapZoom)
		assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	})

	t.Run("環境変数で上書き", func(t *testing.T) {
		t.Setenv("DATASET_SOURCE", "FILE")
		t.Setenv("FALLBACK_LAT", "42.3601")
		t.Setenv("FALLBACK_LNG", "-71.0589")
		t.Setenv("SESSION_TTL", "5m")
		t.Setenv("MAP_ZOOM", "11")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, model.LatLng{Lat: 42.3601, Lng: -71.0589}, cfg.Fallback)
		assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
		assert.Equal(t, 11, cfg.MapZoom)
	})

	t.Run("不正な値はエラー", func(t *testing.T) {
		t.Setenv("FALLBACK_LAT", "north")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("範囲外のフォールバック座標はエラー", func(t *testing.T) {
		t.Setenv("FALLBACK_LAT", "95")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("NaNのフォールバック座標はエラー", func(t *testing.T) {
		for _, key := range []string{"FALLBACK_LAT", "FALLBACK_LNG"} {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, "NaN")
				_, err := Load()
				assert.Error(t, err)
			})
		}
	})

	t.Run("無限大のフォールバック座標はエラー", func(t *testing.T) {
		t.Setenv("FALLBACK_LNG", "-Inf")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Validateは直接渡されたNaNも拒否する", func(t *testing.T) {
		cfg := &Config{
			Fallback:      model.LatLng{Lat: math.NaN(), Lng: -71.4676},
			SessionTTL:    time.Minute,
			DatasetSource: SourceFile,
			DatasetPath:   "data/resourcesByCity.json",
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Supabaseは接続情報が必須", func(t *testing.T) {
		t.Setenv("FALLBACK_LAT", "")
		t.Setenv("DATASET_SOURCE", SourceSupabase)
		t.Setenv("SUPABASE_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("未対応の読み込み元はエラー", func(t *testing.T) {
		t.Setenv("FALLBACK_LAT", "")
		t.Setenv("DATASET_SOURCE", "kafka")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SAFEHELP_TEST_KEY=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SAFEHELP_TEST_KEY") })

	assert.True(t, LoadEnv(path))
	assert.Equal(t, "loaded", os.Getenv("SAFEHELP_TEST_KEY"))
	assert.False(t, LoadEnv(filepath.Join(dir, "missing.env")))
}
