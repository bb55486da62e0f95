package login

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"postos/infra/token"
)

type ServiceInterface interface {
	Login(ctx context.Context, data RequestLogin) (ResponseLogin, error)
	Logout(ctx context.Context, sessao uuid.UUID) error
	Cookies(ctx context.Context, sessao uuid.UUID) ([]*http.Cookie, error)
}

type Service struct {
	remote     RemoteAuthenticator
	repository RepositoryInterface
	maker      token.Maker
	ttl        time.Duration
}

func NewService(remote RemoteAuthenticator, repository RepositoryInterface, maker token.Maker, ttl time.Duration) *Service {
	return &Service{remote, repository, maker, ttl}
}

// Login authenticates against the station API and opens a local session holding its cookies.
func (s *Service) Login(ctx context.Context, data RequestLogin) (response ResponseLogin, err error) {
	cookies, err := s.remote.Login(ctx, data.Usuario, data.Senha)
	if err != nil {
		log.Warn().Err(err).Str("usuario", data.Usuario).Msg("login recusado")
		return response, err
	}

	sessao := uuid.New()
	if err := s.repository.SaveCookies(ctx, sessao, cookies, s.ttl); err != nil {
		return response, err
	}

	tokenStr, payload, err := s.maker.CreateToken(sessao, data.Usuario, s.ttl)
	if err != nil {
		return response, err
	}

	log.Info().Str("usuario", data.Usuario).Str("sessao", sessao.String()).Msg("sessão administrativa aberta")
	return ResponseLogin{Token: tokenStr, Sessao: sessao, ExpiredAt: payload.ExpiredAt}, nil
}

func (s *Service) Logout(ctx context.Context, sessao uuid.UUID) error {
	return s.repository.DeleteSession(ctx, sessao)
}

// Cookies returns the station API cookies of an open session.
func (s *Service) Cookies(ctx context.Context, sessao uuid.UUID) ([]*http.Cookie, error) {
	return s.repository.GetCookies(ctx, sessao)
}
