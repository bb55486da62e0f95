package mapa

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"postos/internal/geo"
	"postos/internal/geolocation"
	"postos/internal/posto"
	"postos/internal/routes"
	"postos/pkg/metrics"
)

// Page is one viewer's map. Transitions are serialized; remote calls run in the background and
// report back through Dispatch. A newer request of a kind cancels the one in flight.
type Page struct {
	ID uuid.UUID

	postos   posto.InterfaceService
	routes   routes.InterfaceService
	renderer Renderer

	mu       sync.Mutex
	idle     *sync.Cond
	state    State
	closed   bool
	inflight map[string]inflight
	pending  int

	ctx    context.Context
	cancel context.CancelFunc
}

type inflight struct {
	tag    uint64
	cancel context.CancelFunc
}

func NewPage(id uuid.UUID, postos posto.InterfaceService, routes routes.InterfaceService, renderer Renderer) *Page {
	if renderer == nil {
		renderer = NopRenderer
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Page{
		ID:       id,
		postos:   postos,
		routes:   routes,
		renderer: renderer,
		state:    NewState(),
		inflight: make(map[string]inflight),
		ctx:      ctx,
		cancel:   cancel,
	}
	p.idle = sync.NewCond(&p.mu)
	return p
}

// LoadAll replaces the station list with every registered station.
func (p *Page) LoadAll() {
	p.Dispatch(LoadAllRequested{})
}

// LoadTopN replaces the station list with the cheapest stations for fuel.
func (p *Page) LoadTopN(fuel posto.FuelType) {
	p.Dispatch(TopNRequested{Fuel: fuel})
}

func (p *Page) SelectFuelType(fuel posto.FuelType) {
	p.Dispatch(FuelTypeSelected{Fuel: fuel})
}

// SuggestNearest locates the viewer and asks for the cheapest nearby station. When the viewer
// cannot be located the error is returned and no suggestion is requested.
func (p *Page) SuggestNearest(ctx context.Context, locator geolocation.Locator, fuel posto.FuelType) error {
	coord, err := locator.CurrentCoordinate(ctx)
	if err != nil {
		log.Warn().Err(err).Str("page", p.ID.String()).Msg("Erro ao obter localização")
		return err
	}
	p.Dispatch(ViewerLocated{Coord: coord}, SuggestRequested{Fuel: fuel})
	return nil
}

func (p *Page) Clear() {
	p.Dispatch(Cleared{})
}

func (p *Page) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

// Wait blocks until no remote call is in flight. Calls started by other goroutines
// while waiting extend the wait.
func (p *Page) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waitIdle()
}

// waitIdle must be called with mu held.
func (p *Page) waitIdle() {
	for p.pending > 0 {
		p.idle.Wait()
	}
}

// Close cancels everything in flight and waits for it. Later dispatches are ignored.
// A renderer implementing RendererCloser is closed last.
func (p *Page) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cancel()
	p.waitIdle()
	p.mu.Unlock()

	if c, ok := p.renderer.(RendererCloser); ok {
		c.Close()
	}
}

// Dispatch applies actions in order and renders their combined effects as one flush.
func (p *Page) Dispatch(actions ...Action) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	var queue CameraQueue
	for _, a := range actions {
		next, effects := Reduce(p.state, a)
		p.state = next
		for _, e := range effects {
			p.run(e, &queue)
		}
	}
	queue.Flush(p.renderer)

	if l, ok := p.renderer.(StateListener); ok {
		l.StateChanged(p.state.Clone())
	}
}

// run must be called with mu held.
func (p *Page) run(e Effect, queue *CameraQueue) {
	switch e := e.(type) {
	case FetchPostos:
		p.spawn(kindList, e.Tag, func(ctx context.Context) Action {
			var (
				list []posto.Posto
				err  error
			)
			if e.Top {
				list, err = p.postos.LoadTopN(ctx, e.Fuel)
			} else {
				list, err = p.postos.LoadAll(ctx)
			}
			if err != nil {
				return PostosFailed{Tag: e.Tag, Err: err}
			}
			return PostosLoaded{Tag: e.Tag, Postos: list}
		})

	case FetchSuggestion:
		p.spawn(kindSuggest, e.Tag, func(ctx context.Context) Action {
			suggested, err := p.postos.SuggestNearest(ctx, e.From, e.Fuel)
			if err != nil {
				return SuggestionFailed{Tag: e.Tag, Err: err}
			}
			return SuggestionLoaded{Tag: e.Tag, Posto: suggested}
		})

	case FetchRoute:
		p.spawn(kindRoute, e.Tag, func(ctx context.Context) Action {
			points, err := p.routes.Route(ctx, e.From, e.To)
			if err != nil {
				logRouteFailure(p.ID, err, e.From, e.To)
				return RouteFailed{Tag: e.Tag, Err: err}
			}
			return RouteLoaded{Tag: e.Tag, Points: points}
		})

	case StaleDiscarded:
		metrics.StaleResponses.WithLabelValues(e.Kind).Inc()
		log.Debug().Str("page", p.ID.String()).Str("kind", e.Kind).Uint64("tag", e.Tag).Msg("resposta obsoleta descartada")

	default:
		queue.Push(e)
	}
}

// spawn must be called with mu held.
func (p *Page) spawn(kind string, tag uint64, call func(ctx context.Context) Action) {
	if prev, ok := p.inflight[kind]; ok {
		prev.cancel()
	}
	ctx, cancel := context.WithCancel(p.ctx)
	p.inflight[kind] = inflight{tag: tag, cancel: cancel}

	p.pending++
	go func() {
		result := call(ctx)
		cancel()

		p.mu.Lock()
		if cur, ok := p.inflight[kind]; ok && cur.tag == tag {
			delete(p.inflight, kind)
		}
		p.mu.Unlock()

		p.Dispatch(result)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.idle.Broadcast()
		}
		p.mu.Unlock()
	}()
}

func logRouteFailure(page uuid.UUID, err error, from, to geo.Coordinate) {
	ev := log.Error()
	if errors.Is(err, context.Canceled) {
		ev = log.Debug()
	}
	ev.Err(err).
		Str("page", page.String()).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("Erro ao traçar rota")
}
