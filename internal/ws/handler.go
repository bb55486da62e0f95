package ws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"postos/internal/mapa"
)

// Sessions finds the page a browser wants to follow.
type Sessions interface {
	Get(id uuid.UUID) (*mapa.Page, bool)
}

type Handler struct {
	hub      *Hub
	sessions Sessions
}

func NewWsHandler(hub *Hub, sessions Sessions) *Handler {
	return &Handler{
		hub:      hub,
		sessions: sessions,
	}
}

var upgrade = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWs godoc
// @Summary Acompanhar o mapa.
// @Description Abre um websocket que recebe as diretivas de desenho da sessão, começando pelo estado atual.
// @Tags Mapa
// @Param sessao path string true "ID da sessão"
// @Router /ws/{sessao} [get]
func (h *Handler) HandleWs(c echo.Context) error {
	sessao, err := uuid.Parse(c.Param("sessao"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, mapa.ErrInvalidSession.Error())
	}
	page, ok := h.sessions.Get(sessao)
	if !ok {
		return c.JSON(http.StatusNotFound, mapa.ErrSessionNotFound.Error())
	}

	conn, err := upgrade.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("erro no upgrade do websocket")
		return nil
	}

	cl := &Client{
		Conn:    conn,
		Message: make(chan *Directive, 64),
		Sessao:  sessao,
		Initial: func() *Directive {
			snapshot := page.Snapshot()
			return &Directive{Sessao: sessao, Type: TypeEstado, Estado: &snapshot}
		},
	}

	if !h.hub.register(cl) {
		_ = conn.Close()
		return nil
	}

	go cl.writeMessage()

	cl.readMessage(h.hub)

	return nil
}
