package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"SafeHelp-App/internal/domain/model"
	"SafeHelp-App/internal/domain/service"
)

// ErrSessionNotFound はセッションが存在しない（または期限切れ）場合のエラー
var ErrSessionNotFound = errors.New("セッションが見つかりません")

// Session はUIセッション1つ分の状態
type Session struct {
	ID         string
	City       string
	Controller *service.SelectionController
	CreatedAt  time.Time
	LastSeenAt time.Time

	mu           sync.Mutex
	lastRendered *model.LatLng
}

// MarkRendered は描画した地図中心を記録し、前回の描画から中心が変わったかを返す
// 初回描画で中心がある場合はtrue
func (s *Session) MarkRendered(center *model.LatLng) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if center == nil {
		return false
	}
	changed := s.lastRendered == nil || *s.lastRendered != *center
	c := *center
	s.lastRendered = &c
	return changed
}

// SessionsRepository はセッションの保管を担当するリポジトリ
type SessionsRepository interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Touch(ctx context.Context, id string, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}
