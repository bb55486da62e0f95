package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"postos/infra/token"
)

// SessionCookies resolves the station API cookies of an admin session.
type SessionCookies interface {
	Cookies(ctx context.Context, sessao uuid.UUID) ([]*http.Cookie, error)
}

func CheckAuthorization(maker token.Maker, sessions SessionCookies) echo.MiddlewareFunc {
	return func(handlerFunc echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bearerToken := c.Request().Header.Get("Authorization")
			tokenStr := strings.Replace(bearerToken, "Bearer ", "", 1)

			tokenPayload, err := maker.VerifyToken(tokenStr)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, err.Error())
			}

			cookies, err := sessions.Cookies(c.Request().Context(), tokenPayload.ID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, err.Error())
			}

			c.Set("token_id", tokenPayload.ID)
			c.Set("token_usuario", tokenPayload.Usuario)
			c.Set("token_expired_at", tokenPayload.ExpiredAt)
			c.Set("token_cookies", cookies)

			return handlerFunc(c)
		}
	}
}

// RequestLogger logs one line per request through zerolog.
func RequestLogger() echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
