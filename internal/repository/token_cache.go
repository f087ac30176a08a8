package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/medusa-studio/booking-api/pkg/logger"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

// minTokenTTL токены, которым осталось жить меньше, не кешируются
const minTokenTTL = 30 * time.Second

// TokenCache хранилище OAuth токенов интеграций.
// GetToken возвращает nil, nil, если токена нет или он истек.
type TokenCache interface {
	GetToken(ctx context.Context, key string) (*oauth2.Token, error)
	SetToken(ctx context.Context, key string, tok *oauth2.Token) error
}

type cachedToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Expiry      time.Time `json:"expiry"`
}

// RedisCacheRepository кеш токенов в Redis, общий для всех инстансов сервиса
type RedisCacheRepository struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		log.Errorw("Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infow("Connected to Redis successfully", "addr", addr)
	return client, nil
}

// NewRedisCacheRepository создает кеш токенов поверх готового клиента
func NewRedisCacheRepository(client *redis.Client, log *logger.Logger) *RedisCacheRepository {
	return &RedisCacheRepository{client: client, log: log}
}

// Close закрывает соединение с Redis
func (r *RedisCacheRepository) Close() error {
	return r.client.Close()
}

// GetToken получает токен из кеша
func (r *RedisCacheRepository) GetToken(ctx context.Context, key string) (*oauth2.Token, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.log.Debugw("Token not found in cache", "key", key)
			return nil, nil
		}
		r.log.Errorw("Error getting token from Redis", "error", err, "key", key)
		return nil, fmt.Errorf("failed to get token from cache: %w", err)
	}

	tok, err := decodeToken(data)
	if err != nil {
		r.log.Errorw("Failed to unmarshal cached token", "error", err, "key", key)
		return nil, err
	}
	if !tok.Valid() {
		return nil, nil
	}
	return tok, nil
}

// SetToken кладет токен в кеш с TTL до его истечения
func (r *RedisCacheRepository) SetToken(ctx context.Context, key string, tok *oauth2.Token) error {
	ttl := time.Until(tok.Expiry)
	if tok.Expiry.IsZero() || ttl < minTokenTTL {
		return nil
	}

	data, err := encodeToken(tok)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.log.Errorw("Failed to cache token in Redis", "error", err, "key", key)
		return fmt.Errorf("failed to cache token: %w", err)
	}

	r.log.Debugw("Token cached successfully", "key", key, "ttl", ttl.String())
	return nil
}

// MemoryTokenCache кеш токенов в памяти процесса, когда Redis не настроен
type MemoryTokenCache struct {
	mu     sync.Mutex
	tokens map[string]*oauth2.Token
}

// NewMemoryTokenCache создает пустой кеш
func NewMemoryTokenCache() *MemoryTokenCache {
	return &MemoryTokenCache{tokens: make(map[string]*oauth2.Token)}
}

// GetToken возвращает действующий токен или nil
func (m *MemoryTokenCache) GetToken(_ context.Context, key string) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok, ok := m.tokens[key]
	if !ok || !tok.Valid() {
		delete(m.tokens, key)
		return nil, nil
	}
	return tok, nil
}

// SetToken сохраняет токен
func (m *MemoryTokenCache) SetToken(_ context.Context, key string, tok *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[key] = tok
	return nil
}

func encodeToken(tok *oauth2.Token) ([]byte, error) {
	data, err := json.Marshal(cachedToken{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		Expiry:      tok.Expiry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token: %w", err)
	}
	return data, nil
}

func decodeToken(data []byte) (*oauth2.Token, error) {
	var ct cachedToken
	if err := json.Unmarshal(data, &ct); err != nil || ct.AccessToken == "" {
		return nil, fmt.Errorf("%w: cached token", ErrInvalidData)
	}
	return &oauth2.Token{AccessToken: ct.AccessToken, TokenType: ct.TokenType, Expiry: ct.Expiry}, nil
}
