package geolocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SafeHelp-App/internal/domain/model"
)

func TestStaticProvider(t *testing.T) {
	want := model.LatLng{Lat: 42.7638, Lng: -71.4671}
	got, err := StaticProvider{Position: want}.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = StaticProvider{Position: want}.CurrentPosition(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnavailableProvider(t *testing.T) {
	_, err := UnavailableProvider{}.CurrentPosition(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDelayedProvider(t *testing.T) {
	inner := StaticProvider{Position: model.LatLng{Lat: 1, Lng: 2}}

	t.Run("遅延後に委譲", func(t *testing.T) {
		got, err := DelayedProvider{Delay: time.Millisecond, Inner: inner}.CurrentPosition(context.Background())
		require.NoError(t, err)
		assert.Equal(t, model.LatLng{Lat: 1, Lng: 2}, got)
	})

	t.Run("キャンセルで待機終了", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		defer cancel()
		_, err := DelayedProvider{Delay: time.Hour, Inner: inner}.CurrentPosition(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
