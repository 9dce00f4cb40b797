package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// sessionTokenKey is the single fixed key the session token lives
// under; there is no other persisted client state.
const sessionTokenKey = "noa_auth_token"

// TokenStore keeps the one session token. Token also satisfies the
// upstream client's TokenSource, so the store plugs straight into the
// bearer-injection path.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Token(ctx context.Context) string
	Clear(ctx context.Context) error
}

// MemoryTokenStore is the default store: the token lives for the
// process lifetime only, like the original browser session.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token

	return nil
}

func (s *MemoryTokenStore) Token(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token
}

func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""

	return nil
}

// RedisTokenStore persists the token across gateway restarts when a
// redis address is configured.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(addr string) *RedisTokenStore {
	return &RedisTokenStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	err := s.client.Set(ctx, sessionTokenKey, token, 0).Err()
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	return nil
}

// Token returns "" on any error: an unreachable store means requests
// simply go out unauthenticated, the same as having no session.
func (s *RedisTokenStore) Token(ctx context.Context) string {
	token, err := s.client.Get(ctx, sessionTokenKey).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("token store unavailable", "error", err)
		}

		return ""
	}

	return token
}

func (s *RedisTokenStore) Clear(ctx context.Context) error {
	err := s.client.Del(ctx, sessionTokenKey).Err()
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}

	return nil
}

func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}
