package mapa

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"postos/internal/geo"
	"postos/internal/geolocation"
	"postos/internal/posto"
)

var (
	ErrSessionNotFound = errors.New("sessão não encontrada")
	ErrInvalidSession  = errors.New("id de sessão inválido")
)

type Handler struct {
	Registry *Registry
	Locator  geolocation.Locator
}

// NewMapaHandler serves the map pages. locator is used when the browser sends no position.
func NewMapaHandler(registry *Registry, locator geolocation.Locator) *Handler {
	if locator == nil {
		locator = geolocation.Unsupported
	}
	return &Handler{Registry: registry, Locator: locator}
}

// CreateSessionHandler godoc
// @Summary Abrir mapa.
// @Description Abre uma sessão de mapa e carrega todos os postos.
// @Tags Mapa
// @Produce json
// @Success 201 {object} SessionResponse "Sessão criada"
// @Router /api/sessoes [post]
func (h *Handler) CreateSessionHandler(c echo.Context) error {
	page := h.Registry.Create()
	page.LoadAll()
	settle(c, page)
	return c.JSON(http.StatusCreated, newSessionResponse(page))
}

// GetSessionHandler godoc
// @Summary Estado do mapa.
// @Tags Mapa
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} SessionResponse "Estado atual"
// @Failure 404 {string} string "Sessão não encontrada"
// @Router /api/sessoes/{id} [get]
func (h *Handler) GetSessionHandler(c echo.Context) error {
	page, status, err := h.page(c)
	if err != nil {
		return c.JSON(status, err.Error())
	}
	settle(c, page)
	return c.JSON(http.StatusOK, newSessionResponse(page))
}

// DeleteSessionHandler godoc
// @Summary Fechar mapa.
// @Tags Mapa
// @Param id path string true "ID da sessão"
// @Success 204
// @Router /api/sessoes/{id} [delete]
func (h *Handler) DeleteSessionHandler(c echo.Context) error {
	page, status, err := h.page(c)
	if err != nil {
		return c.JSON(status, err.Error())
	}
	h.Registry.Remove(page.ID)
	return c.NoContent(http.StatusNoContent)
}

// LoadAllHandler godoc
// @Summary Listar todos os postos.
// @Tags Mapa
// @Produce json
// @Param id path string true "ID da sessão"
// @Param aguardar query bool false "Aguardar as respostas pendentes"
// @Success 202 {object} SessionResponse "Estado após a requisição"
// @Router /api/sessoes/{id}/postos [post]
func (h *Handler) LoadAllHandler(c echo.Context) error {
	page, status, err := h.page(c)
	if err != nil {
		return c.JSON(status, err.Error())
	}
	page.LoadAll()
	return h.accepted(c, page)
}

// LoadTopNHandler godoc
// @Summary Ranking dos postos mais baratos.
// @Tags Mapa
// @Produce json
// @Param id path string true "ID da sessão"
// @Param tipo query string false "gasolina, etanol ou diesel"
// @Success 202 {object} SessionResponse "Estado após a requisição"
// @Failure 400 {string} string "Tipo de combustível inválido"
// @Router /api/sessoes/{id}/top10 [post]
func (h *Handler) LoadTopNHandler(c echo.Context) error {
	page, status, err := h.page(c)
	if err != nil {
		return c.JSON(status, err.Error())
	}
	fuel, err := posto.ParseFuelType(c.QueryParam("tipo"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	page.LoadTopN(fuel)
	return h.accepted(c, page)
}

// SuggestNearestHandler godoc
// @Summary Sugerir o posto mais barato próximo.
// @Tags Mapa
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param request body SugerirRequest false "Posição do navegador e tipo de combustível"
// @Success 202 {object} SessionResponse "Estado após a requisição"
// @Failure 400 {string} string "Requisição Inválida"
// @Failure 422 {object} MessageResponse "Localização indisponível"
// @Router /api/sessoes/{id}/sugerir [post]
func (h *Handler) SuggestNearestHandler(c echo.Context) error {
	page, status, err := h.page(c)
	if err != nil {
		return c.JSON(status, err.Error())
	}

	var request SugerirRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	fuel, err := posto.ParseFuelType(request.Tipo)
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	browser := geolocation.Unsupported
	if request.Lat != nil || request.Lon != nil {
		if request.Lat == nil || request.Lon == nil {
			return c.JSON(http.StatusBadRequest, "lat e lon devem ser enviados juntos")
		}
		coord := geo.Coordinate{Lat: *request.Lat, Lon: *request.Lon}
		if !coord.Valid() {
			return c.JSON(http.StatusBadRequest, "coordenada inválida")
		}
		browser = geolocation.StaticLocator{Coordinate: coord}
	}
	locator := geolocation.Fallback(browser, h.Locator)

	if err := page.SuggestNearest(c.Request().Context(), locator, fuel); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, MessageResponse{Message: geolocation.UserMessage(err)})
	}
	return h.accepted(c, page)
}

// ClearSuggestionHandler godoc
// @Summary Limpar sugestão e rota.
// @Tags Mapa
// @Param id path string true "ID da sessão"
// @Success 202 {object} SessionResponse "Estado após a requisição"
// @Router /api/sessoes/{id}/sugestao [delete]
func (h *Handler) ClearSuggestionHandler(c echo.Context) error {
	page, status, err := h.page(c)
	if err != nil {
		return c.JSON(status, err.Error())
	}
	page.Clear()
	return h.accepted(c, page)
}

func (h *Handler) page(c echo.Context) (*Page, int, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, http.StatusBadRequest, ErrInvalidSession
	}
	page, ok := h.Registry.Get(id)
	if !ok {
		return nil, http.StatusNotFound, ErrSessionNotFound
	}
	return page, 0, nil
}

func newSessionResponse(page *Page) SessionResponse {
	return SessionResponse{ID: page.ID, Centro: geo.DefaultCenter, Zoom: DefaultZoom, Estado: page.Snapshot()}
}

func (h *Handler) accepted(c echo.Context, page *Page) error {
	settle(c, page)
	return c.JSON(http.StatusAccepted, newSessionResponse(page))
}

// settle waits for pending remote calls when the client asked with ?aguardar=true.
func settle(c echo.Context, page *Page) {
	if c.QueryParam("aguardar") == "true" {
		page.Wait()
	}
}
