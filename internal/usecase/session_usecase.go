package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"SafeHelp-App/internal/application"
	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/domain/repository"
	"SafeHelp-App/internal/domain/service"
	"SafeHelp-App/internal/infrastructure/geolocation"
)

type SessionUseCase interface {
	// CreateSession は都市のデータセットを対象とする新しいセッションを作成する
	CreateSession(ctx context.Context, city string) (*repository.Session, model.View, error)

	// ResolveLocation は位置情報の結果（nilは取得失敗）をセッションに届ける
	ResolveLocation(ctx context.Context, id string, coord *model.LatLng) (model.View, error)

	// AwaitLocation はプロバイダーから現在位置を一度だけ取得し、結果をセッションに届ける
	AwaitLocation(ctx context.Context, id string, provider geolocation.Provider) (model.View, error)

	// SelectCategory はカテゴリを選択し、更新後の表示を返す
	SelectCategory(ctx context.Context, id, category string) (model.View, error)

	// View は現在の表示を返す
	View(ctx context.Context, id string) (*repository.Session, model.View, error)

	// EndSession はセッションを破棄する
	EndSession(ctx context.Context, id string) error

	// SweepExpired は期限切れのセッションを削除する
	SweepExpired(ctx context.Context) (int, error)

	// StartSweeper はctxがキャンセルされるまで一定間隔でSweepExpiredを実行する
	StartSweeper(ctx context.Context, interval time.Duration)
}

// sessionUseCaseImpl はSessionUseCaseの実装
type sessionUseCaseImpl struct {
	catalog  application.CatalogService
	sessions repository.SessionsRepository
	fallback model.LatLng
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionUseCase は新しいSessionUseCaseインスタンスを作成
func NewSessionUseCase(
	catalog application.CatalogService,
	sessions repository.SessionsRepository,
	fallback model.LatLng,
	ttl time.Duration,
	logger *zap.Logger,
) SessionUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sessionUseCaseImpl{
		catalog:  catalog,
		sessions: sessions,
		fallback: fallback,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *sessionUseCaseImpl) CreateSession(ctx context.Context, city string) (*repository.Session, model.View, error) {
	resources, err := u.catalog.Resources(ctx, city)
	if err != nil {
		return nil, model.View{}, fmt.Errorf("セッション作成失敗: %w", err)
	}

	now := u.now()
	session := &repository.Session{
		ID:         uuid.New().String(),
		City:       city,
		Controller: service.NewSelectionController(resources, u.fallback),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, model.View{}, fmt.Errorf("セッション保存失敗: %w", err)
	}

	u.logger.Info("セッション作成",
		zap.String("session_id", session.ID),
		zap.String("city", city),
		zap.Int("resources", len(resources)))
	return session, session.Controller.CurrentView(), nil
}

func (u *sessionUseCaseImpl) ResolveLocation(ctx context.Context, id string, coord *model.LatLng) (model.View, error) {
	session, err := u.touch(ctx, id)
	if err != nil {
		return model.View{}, err
	}

	if err := session.Controller.OnLocationResolved(coord); err != nil {
		u.logger.Warn("位置情報の重複通知を無視", zap.String("session_id", id))
		return model.View{}, fmt.Errorf("セッション %s: %w", id, err)
	}

	if coord == nil {
		u.logger.Info("位置情報取得失敗、既定の中心を使用", zap.String("session_id", id))
	} else {
		u.logger.Info("位置情報取得", zap.String("session_id", id))
	}
	return session.Controller.CurrentView(), nil
}

func (u *sessionUseCaseImpl) AwaitLocation(ctx context.Context, id string, provider geolocation.Provider) (model.View, error) {
	if _, err := u.sessions.Get(ctx, id); err != nil {
		return model.View{}, fmt.Errorf("セッション %s: %w", id, err)
	}

	coord, err := provider.CurrentPosition(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return model.View{}, fmt.Errorf("位置情報の待機を中断: %w", ctxErr)
	}
	if err != nil {
		u.logger.Debug("位置情報プロバイダーのエラー", zap.String("session_id", id), zap.Error(err))
		return u.ResolveLocation(ctx, id, nil)
	}
	return u.ResolveLocation(ctx, id, &coord)
}

func (u *sessionUseCaseImpl) SelectCategory(ctx context.Context, id, category string) (model.View, error) {
	session, err := u.touch(ctx, id)
	if err != nil {
		return model.View{}, err
	}
	session.Controller.SelectCategory(category)
	return session.Controller.CurrentView(), nil
}

func (u *sessionUseCaseImpl) View(ctx context.Context, id string) (*repository.Session, model.View, error) {
	session, err := u.touch(ctx, id)
	if err != nil {
		return nil, model.View{}, err
	}
	return session, session.Controller.CurrentView(), nil
}

func (u *sessionUseCaseImpl) EndSession(ctx context.Context, id string) error {
	if err := u.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("セッション %s: %w", id, err)
	}
	u.logger.Info("セッション終了", zap.String("session_id", id))
	return nil
}

func (u *sessionUseCaseImpl) SweepExpired(ctx context.Context) (int, error) {
	deleted, err := u.sessions.DeleteExpired(ctx, u.now().Add(-u.ttl))
	if err != nil {
		return 0, fmt.Errorf("期限切れセッションの削除失敗: %w", err)
	}
	if deleted > 0 {
		u.logger.Info("期限切れセッションを削除", zap.Int("count", deleted))
	}
	return deleted, nil
}

func (u *sessionUseCaseImpl) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := u.SweepExpired(ctx); err != nil && !errors.Is(err, context.Canceled) {
					u.logger.Error("セッション掃除失敗", zap.Error(err))
				}
			}
		}
	}()
}

func (u *sessionUseCaseImpl) touch(ctx context.Context, id string) (*repository.Session, error) {
	session, err := u.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("セッション %s: %w", id, err)
	}
	if err := u.sessions.Touch(ctx, id, u.now()); err != nil {
		return nil, fmt.Errorf("セッション %s: %w", id, err)
	}
	return session, nil
}
