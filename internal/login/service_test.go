package login

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postos/infra/token"
	"postos/internal/posto"
	"postos/pkg"
)

type fakeRemote struct {
	calls int
}

func (f *fakeRemote) Login(_ context.Context, usuario, senha string) ([]*http.Cookie, error) {
	f.calls++
	if usuario != "admin" || senha != "admin123" {
		return nil, posto.ErrInvalidCredentials
	}
	return []*http.Cookie{{Name: "session", Value: "flask-session", HttpOnly: true}}, nil
}

func newTestService(t *testing.T) (*Service, token.Maker) {
	t.Helper()
	maker, err := token.NewPasetoMaker("12345678901234567890123456789012")
	require.NoError(t, err)
	repo := NewRepository(pkg.NewMemoryCache(16, time.Hour))
	return NewService(&fakeRemote{}, repo, maker, time.Hour), maker
}

func TestService_LoginStoresCookies(t *testing.T) {
	svc, maker := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, RequestLogin{Usuario: "admin", Senha: "admin123"})
	require.NoError(t, err)

	payload, err := maker.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Sessao, payload.ID)
	assert.Equal(t, "admin", payload.Usuario)

	cookies, err := svc.Cookies(ctx, resp.Sessao)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "flask-session", cookies[0].Value)

	require.NoError(t, svc.Logout(ctx, resp.Sessao))
	_, err = svc.Cookies(ctx, resp.Sessao)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_LoginRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), RequestLogin{Usuario: "admin", Senha: "errada"})
	assert.ErrorIs(t, err, posto.ErrInvalidCredentials)
}

func TestHandler_Login(t *testing.T) {
	svc, _ := newTestService(t)
	h := NewHandler(svc)
	e := echo.New()

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "ok", body: `{"usuario":"admin","senha":"admin123"}`, want: http.StatusOK},
		{name: "wrong password", body: `{"usuario":"admin","senha":"x"}`, want: http.StatusUnauthorized},
		{name: "missing password", body: `{"usuario":"admin"}`, want: http.StatusBadRequest},
		{name: "not json", body: `{`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			require.NoError(t, h.Login(e.NewContext(req, rec)))
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"token":"v2.local.`)
			}
		})
	}
}
