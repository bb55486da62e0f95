package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"postos/internal/geo"
	"postos/internal/mapa"
)

type Hub struct {
	Clients    map[uuid.UUID]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan *Directive
	Mu         *sync.RWMutex

	done chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[uuid.UUID]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *Directive, 256),
		Mu:         &sync.RWMutex{},
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx ends; then every client is disconnected.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.Mu.Lock()
			for sessao, clients := range h.Clients {
				for cl := range clients {
					close(cl.Message)
				}
				delete(h.Clients, sessao)
			}
			h.Mu.Unlock()
			return

		case cl := <-h.Register:
			h.Mu.Lock()
			if _, ok := h.Clients[cl.Sessao]; !ok {
				h.Clients[cl.Sessao] = make(map[*Client]bool)
			}
			h.Clients[cl.Sessao][cl] = true
			if cl.Initial != nil {
				if d := cl.Initial(); d != nil {
					cl.Message <- d
				}
			}
			h.Mu.Unlock()

		case cl := <-h.Unregister:
			h.Mu.Lock()
			h.remove(cl)
			h.Mu.Unlock()

		case m := <-h.Broadcast:
			h.Mu.Lock()
			for cl := range h.Clients[m.Sessao] {
				select {
				case cl.Message <- m:
				default:
					log.Warn().Str("sessao", m.Sessao.String()).Msg("cliente lento desconectado")
					h.remove(cl)
				}
			}
			h.Mu.Unlock()
		}
	}
}

func (h *Hub) register(cl *Client) bool {
	select {
	case h.Register <- cl:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregister(cl *Client) {
	select {
	case h.Unregister <- cl:
	case <-h.done:
	}
}

// remove must be called with Mu held.
func (h *Hub) remove(cl *Client) {
	clients, ok := h.Clients[cl.Sessao]
	if !ok || !clients[cl] {
		return
	}
	delete(clients, cl)
	close(cl.Message)
	if len(clients) == 0 {
		delete(h.Clients, cl.Sessao)
	}
}

// Disconnect drops every browser following sessao.
func (h *Hub) Disconnect(sessao uuid.UUID) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	for cl := range h.Clients[sessao] {
		h.remove(cl)
	}
}

// Count returns how many browsers follow sessao.
func (h *Hub) Count(sessao uuid.UUID) int {
	h.Mu.RLock()
	defer h.Mu.RUnlock()
	return len(h.Clients[sessao])
}

func (h *Hub) publish(d *Directive) {
	select {
	case h.Broadcast <- d:
	default:
		log.Warn().Str("sessao", d.Sessao.String()).Str("type", d.Type).Msg("fila de broadcast cheia, diretiva descartada")
	}
}

// Renderer returns the map renderer of one session. It never blocks the page.
func (h *Hub) Renderer(sessao uuid.UUID) mapa.Renderer {
	return &renderer{hub: h, sessao: sessao}
}

type renderer struct {
	hub    *Hub
	sessao uuid.UUID
}

func (r *renderer) FitBounds(b geo.Bounds, padding int) {
	r.hub.publish(&Directive{Sessao: r.sessao, Type: TypeFitBounds, Bounds: &b, Padding: padding})
}

func (r *renderer) FlyTo(center geo.Coordinate, zoom int) {
	r.hub.publish(&Directive{Sessao: r.sessao, Type: TypeFlyTo, Center: &center, Zoom: zoom})
}

func (r *renderer) OpenPopup(m mapa.Marker) {
	r.hub.publish(&Directive{Sessao: r.sessao, Type: TypeOpenPopup, Marker: &m})
}

func (r *renderer) DrawPolyline(points []geo.Coordinate) {
	r.hub.publish(&Directive{Sessao: r.sessao, Type: TypeDrawPolyline, Points: points})
}

func (r *renderer) StateChanged(s mapa.State) {
	r.hub.publish(&Directive{Sessao: r.sessao, Type: TypeEstado, Estado: &s})
}

// Close runs when the page closes; its browsers have nothing left to follow.
func (r *renderer) Close() {
	r.hub.Disconnect(r.sessao)
}
