package login

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"postos/internal/get_token"
	"postos/internal/posto"
	"postos/validation"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service}
}

// Login godoc
// @Summary Autenticar administrador.
// @Description Autentica na API de postos e devolve um token de sessão.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body RequestLogin true "Credenciais"
// @Success 200 {object} ResponseLogin "Token de sessão"
// @Failure 400 {string} string "Requisição Inválida"
// @Failure 401 {string} string "Credenciais inválidas"
// @Failure 500 {string} string "Erro Interno do Servidor"
// @Router /api/login [post]
func (h *Handler) Login(e echo.Context) error {
	var request RequestLogin
	if err := e.Bind(&request); err != nil {
		return e.JSON(http.StatusBadRequest, err.Error())
	}

	if err := validation.Validate(request); err != nil {
		return e.JSON(http.StatusBadRequest, "usuário e senha são obrigatórios")
	}

	result, err := h.service.Login(e.Request().Context(), request)
	if err != nil {
		if errors.Is(err, posto.ErrInvalidCredentials) {
			return e.JSON(http.StatusUnauthorized, "Credenciais inválidas")
		}
		return e.JSON(http.StatusInternalServerError, err.Error())
	}

	return e.JSON(http.StatusOK, result)
}

// Logout godoc
// @Summary Encerrar sessão administrativa.
// @Tags Admin
// @Success 200 {string} string "Sucesso"
// @Router /api/logout [post]
// @Security ApiKeyAuth
func (h *Handler) Logout(e echo.Context) error {
	payload := get_token.GetPayloadToken(e)

	if err := h.service.Logout(e.Request().Context(), payload.ID); err != nil {
		return e.JSON(http.StatusInternalServerError, err.Error())
	}
	return e.JSON(http.StatusOK, "Sucesso")
}
