package crm

import (
	"context"
	"time"

	"github.com/medusa-studio/booking-api/internal/repository"
	"github.com/medusa-studio/booking-api/pkg/logger"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// TokenCacheKey ключ access token Zoho в кеше
const TokenCacheKey = "crm:zoho:access_token"

// cachedTokenSource сначала смотрит в общий кеш, при промахе обновляет токен по refresh token.
// Ошибки кеша не фатальны: токен просто запрашивается заново.
// Параллельные промахи сводятся к одному обновлению.
type cachedTokenSource struct {
	group   singleflight.Group
	key     string
	cache   repository.TokenCache
	base    oauth2.TokenSource
	timeout time.Duration
	log     *logger.Logger
}

func (s *cachedTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	tok, err := s.cache.GetToken(ctx, s.key)
	if err != nil {
		s.log.Warnw("Token cache read failed, refreshing", "key", s.key, "error", err)
	}
	if tok != nil {
		return tok, nil
	}

	v, err, _ := s.group.Do(s.key, func() (any, error) {
		fresh, err := s.base.Token()
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetToken(ctx, s.key, fresh); err != nil {
			s.log.Warnw("Token cache write failed", "key", s.key, "error", err)
		}
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*oauth2.Token), nil
}
