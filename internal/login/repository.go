package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"postos/pkg"
)

var ErrSessionNotFound = errors.New("sessão expirada ou inexistente")

// RemoteAuthenticator is the station API login.
type RemoteAuthenticator interface {
	Login(ctx context.Context, usuario, senha string) ([]*http.Cookie, error)
}

type RepositoryInterface interface {
	SaveCookies(ctx context.Context, sessao uuid.UUID, cookies []*http.Cookie, ttl time.Duration) error
	GetCookies(ctx context.Context, sessao uuid.UUID) ([]*http.Cookie, error)
	DeleteSession(ctx context.Context, sessao uuid.UUID) error
}

// Repository keeps the station API cookies of each admin session in the cache.
type Repository struct {
	cache pkg.Cache
}

func NewRepository(cache pkg.Cache) *Repository {
	return &Repository{cache: cache}
}

func sessionKey(sessao uuid.UUID) string {
	return "sessao:" + sessao.String()
}

func (r *Repository) SaveCookies(ctx context.Context, sessao uuid.UUID, cookies []*http.Cookie, ttl time.Duration) error {
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return r.cache.Set(ctx, sessionKey(sessao), data, ttl)
}

func (r *Repository) GetCookies(ctx context.Context, sessao uuid.UUID) ([]*http.Cookie, error) {
	data, err := r.cache.Get(ctx, sessionKey(sessao))
	if errors.Is(err, pkg.ErrCacheMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return cookies, nil
}

func (r *Repository) DeleteSession(ctx context.Context, sessao uuid.UUID) error {
	return r.cache.Delete(ctx, sessionKey(sessao))
}
