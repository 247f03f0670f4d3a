package storage

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore tracks issued refresh tokens. Take reports whether the token
// was live and removes it in the same step, so a token can be redeemed once.
type TokenStore interface {
	Put(ctx context.Context, token string, ttl time.Duration) error
	Take(ctx context.Context, token string) (bool, error)
}

var Redis *redis.Client

var Tokens TokenStore = NewMemoryTokenStore()

// InitializeRedis selects the refresh token store. Without REDIS_URL tokens
// are kept in process memory and do not survive a restart.
func InitializeRedis(redisURL string) {
	if redisURL == "" {
		log.Println("REDIS_URL not set, keeping refresh tokens in memory")
		Tokens = NewMemoryTokenStore()
		return
	}

	opts := &redis.Options{Addr: redisURL}
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Panic("invalid REDIS_URL: " + err.Error())
		}
		opts = parsed
	}

	Redis = redis.NewClient(opts)
	Tokens = &redisTokenStore{client: Redis}

	log.Println("Redis initialized with address:", opts.Addr)
}

const refreshKeyPrefix = "refresh:"

type redisTokenStore struct {
	client *redis.Client
}

func (s *redisTokenStore) Put(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKeyPrefix+token, "true", ttl).Err()
}

func (s *redisTokenStore) Take(ctx context.Context, token string) (bool, error) {
	deleted, err := s.client.Del(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return deleted == 1, nil
}

type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{tokens: make(map[string]time.Time)}
}

func (s *memoryTokenStore) Put(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (s *memoryTokenStore) Take(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.tokens[token]
	if !ok {
		return false, nil
	}
	delete(s.tokens, token)
	return time.Now().Before(expires), nil
}
