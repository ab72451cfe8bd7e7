// Package geolocation は利用者の現在位置を一度だけ取得するプロバイダーを提供する
package geolocation

import (
	"context"
	"errors"
	"time"

	"SafeHelp-App/internal/domain/model"
)

// ErrUnavailable は位置情報が利用できない（拒否・非対応）場合のエラー
var ErrUnavailable = errors.New("位置情報を取得できません")

// Provider は現在位置を返す。成功時は座標、失敗時はエラーを返す
type Provider interface {
	CurrentPosition(ctx context.Context) (model.LatLng, error)
}

// StaticProvider は固定座標を返すプロバイダー（CLIの--lat/--lng指定など）
type StaticProvider struct {
	Position model.LatLng
}

func (p StaticProvider) CurrentPosition(ctx context.Context) (model.LatLng, error) {
	if err := ctx.Err(); err != nil {
		return model.LatLng{}, err
	}
	return p.Position, nil
}

// UnavailableProvider は常に取得失敗を返すプロバイダー
type UnavailableProvider struct{}

func (UnavailableProvider) CurrentPosition(ctx context.Context) (model.LatLng, error) {
	return model.LatLng{}, ErrUnavailable
}

// DelayedProvider は指定時間待ってから内側のプロバイダーに委譲する
// 待機中にctxがキャンセルされた場合はctx.Err()を返す
type DelayedProvider struct {
	Delay time.Duration
	Inner Provider
}

func (p DelayedProvider) CurrentPosition(ctx context.Context) (model.LatLng, error) {
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return model.LatLng{}, ctx.Err()
	case <-timer.C:
		return p.Inner.CurrentPosition(ctx)
	}
}
