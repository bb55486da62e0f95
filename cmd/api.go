package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"postos/infra"
	_midlleware "postos/infra/middleware"
)

const shutdownTimeout = 10 * time.Second

func StartAPI(ctx context.Context, container *infra.ContainerDI) {
	e := echo.New()
	e.HideBanner = true

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Erro ao encerrar o servidor")
		}
		container.Close()
	}()

	e.Use(middleware.Recover())
	e.Use(_midlleware.RequestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: middleware.DefaultCORSConfig.AllowMethods,
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/api/sessoes", container.HandlerMapa.CreateSessionHandler)
	e.GET("/api/sessoes/:id", container.HandlerMapa.GetSessionHandler)
	e.DELETE("/api/sessoes/:id", container.HandlerMapa.DeleteSessionHandler)
	e.POST("/api/sessoes/:id/postos", container.HandlerMapa.LoadAllHandler)
	e.POST("/api/sessoes/:id/top10", container.HandlerMapa.LoadTopNHandler)
	e.POST("/api/sessoes/:id/sugerir", container.HandlerMapa.SuggestNearestHandler)
	e.DELETE("/api/sessoes/:id/sugestao", container.HandlerMapa.ClearSuggestionHandler)
	e.GET("/ws/:sessao", container.WsHandler.HandleWs)

	auth := _midlleware.CheckAuthorization(container.PasetoMaker, container.LoginService)

	e.POST("/api/login", container.LoginHandler.Login)
	e.POST("/api/logout", container.LoginHandler.Logout, auth)

	adminGroup := e.Group("/admin", auth)
	adminGroup.GET("/postos", container.HandlerAdmin.ListPostosHandler)
	adminGroup.POST("/postos", container.HandlerAdmin.CreatePostoHandler)
	adminGroup.PUT("/postos/:id", container.HandlerAdmin.UpdatePostoHandler)
	adminGroup.DELETE("/postos/:id", container.HandlerAdmin.DeletePostoHandler)

	log.Info().Str("porta", container.Config.ServerPort).Msg("Servidor iniciado")
	if err := e.Start(":" + container.Config.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Erro ao iniciar o servidor")
	}
	<-stopped
}
