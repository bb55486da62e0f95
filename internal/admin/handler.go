package admin

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"postos/internal/geolocation"
	"postos/internal/get_token"
	"postos/internal/posto"
	"postos/validation"
)

const maxImageSize = 5 << 20

type Handler struct {
	InterfaceService InterfaceService
}

func NewAdminHandler(InterfaceService InterfaceService) *Handler {
	return &Handler{InterfaceService}
}

// ListPostosHandler godoc
// @Summary Listar postos (admin).
// @Tags Admin
// @Produce json
// @Param q query string false "Filtro por nome ou endereço"
// @Success 200 {array} posto.Posto "Postos"
// @Failure 502 {string} string "Erro na API de postos"
// @Router /admin/postos [get]
// @Security ApiKeyAuth
func (h *Handler) ListPostosHandler(c echo.Context) error {
	result, err := h.InterfaceService.ListPostos(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return c.JSON(statusOf(err), err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// CreatePostoHandler godoc
// @Summary Cadastrar posto.
// @Description Cadastra um posto a partir do formulário multipart. Coordenadas em branco são obtidas do endereço.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param nome formData string true "Nome"
// @Param endereco formData string true "Endereço"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param preco_gasolina formData number false "Preço da gasolina"
// @Param preco_etanol formData number false "Preço do etanol"
// @Param preco_diesel formData number false "Preço do diesel"
// @Param imagem formData file false "Foto do posto"
// @Success 201 {object} PostoResponse "Posto cadastrado"
// @Failure 400 {string} string "Requisição Inválida"
// @Router /admin/postos [post]
// @Security ApiKeyAuth
func (h *Handler) CreatePostoHandler(c echo.Context) error {
	form, err := parsePostoForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	if err := validation.Validate(form); err != nil {
		return c.JSON(http.StatusBadRequest, validation.Message(err))
	}

	payload := get_token.GetPayloadToken(c)
	result, err := h.InterfaceService.CreatePosto(c.Request().Context(), form, payload.Cookies)
	if err != nil {
		return c.JSON(statusOf(err), err.Error())
	}

	return c.JSON(http.StatusCreated, PostoResponse{Success: true, Posto: result})
}

// UpdatePostoHandler godoc
// @Summary Atualizar posto.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "ID do posto"
// @Param request body UpdatePostoRequest true "Campos alterados"
// @Success 200 {object} PostoResponse "Posto atualizado"
// @Failure 400 {string} string "Requisição Inválida"
// @Router /admin/postos/{id} [put]
// @Security ApiKeyAuth
func (h *Handler) UpdatePostoHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, "id inválido")
	}

	var request UpdatePostoRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	if err := validation.Validate(request); err != nil {
		return c.JSON(http.StatusBadRequest, validation.Message(err))
	}

	payload := get_token.GetPayloadToken(c)
	result, err := h.InterfaceService.UpdatePosto(c.Request().Context(), id, request, payload.Cookies)
	if err != nil {
		return c.JSON(statusOf(err), err.Error())
	}

	return c.JSON(http.StatusOK, PostoResponse{Success: true, Posto: result})
}

// DeletePostoHandler godoc
// @Summary Excluir posto.
// @Tags Admin
// @Param id path int true "ID do posto"
// @Success 200 {string} string "Sucesso"
// @Failure 400 {string} string "Requisição Inválida"
// @Router /admin/postos/{id} [delete]
// @Security ApiKeyAuth
func (h *Handler) DeletePostoHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, "id inválido")
	}

	payload := get_token.GetPayloadToken(c)
	if err := h.InterfaceService.DeletePosto(c.Request().Context(), id, payload.Cookies); err != nil {
		return c.JSON(statusOf(err), err.Error())
	}
	return c.JSON(http.StatusOK, "Sucesso")
}

func parsePostoForm(c echo.Context) (PostoForm, error) {
	form := PostoForm{
		Nome:     c.FormValue("nome"),
		Endereco: c.FormValue("endereco"),
	}

	floats := []struct {
		field string
		dst   **float64
	}{
		{"latitude", &form.Latitude},
		{"longitude", &form.Longitude},
		{"preco_gasolina", &form.PrecoGasolina},
		{"preco_etanol", &form.PrecoEtanol},
		{"preco_diesel", &form.PrecoDiesel},
	}
	for _, f := range floats {
		v, err := validation.ParseOptionalFloat(c.FormValue(f.field))
		if err != nil {
			return form, fmt.Errorf("%s inválido", f.field)
		}
		*f.dst = v
	}

	fh, err := c.FormFile("imagem")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return form, nil
	}
	if err != nil {
		return form, err
	}
	if fh.Size > maxImageSize {
		return form, fmt.Errorf("imagem maior que %d MB", maxImageSize>>20)
	}

	file, err := fh.Open()
	if err != nil {
		return form, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return form, err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	form.Imagem = &posto.Image{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}
	return form, nil
}

func statusOf(err error) int {
	var apiErr *posto.APIError
	switch {
	case errors.Is(err, ErrCoordinatesRequired),
		errors.Is(err, ErrInvalidImage),
		errors.Is(err, geolocation.ErrAddressNotFound):
		return http.StatusBadRequest
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
