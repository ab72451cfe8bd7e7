package repository

import (
	"context"
	"sync"
	"time"

	"SafeHelp-App/internal/domain/repository"
)

// MemorySessionsRepository はプロセス内メモリにセッションを保持するリポジトリ
type MemorySessionsRepository struct {
	mu       sync.RWMutex
	sessions map[string]*repository.Session
}

// NewMemorySessionsRepository 新しいMemorySessionsRepositoryインスタンスを作成
func NewMemorySessionsRepository() *MemorySessionsRepository {
	return &MemorySessionsRepository{
		sessions: make(map[string]*repository.Session),
	}
}

func (r *MemorySessionsRepository) Save(ctx context.Context, session *repository.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *MemorySessionsRepository) Get(ctx context.Context, id string) (*repository.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return session, nil
}

func (r *MemorySessionsRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Touch はセッションの最終アクセス時刻を更新する
func (r *MemorySessionsRepository) Touch(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	session.LastSeenAt = at
	return nil
}

// DeleteExpired は最終アクセスがbefore以前のセッションを削除し、削除件数を返す
func (r *MemorySessionsRepository) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := 0
	for id, session := range r.sessions {
		if !session.LastSeenAt.After(before) {
			delete(r.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

// Len は保持しているセッション数を返す
func (r *MemorySessionsRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
