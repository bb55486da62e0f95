package mapa

import (
	"postos/internal/geo"
	"postos/internal/posto"
)

const RouteFailedNotice = "Não foi possível traçar a rota até o posto sugerido"

// State is everything one viewer's map page shows.
type State struct {
	Postos    []posto.Posto    `json:"postos"`
	FuelType  posto.FuelType   `json:"tipo"`
	Viewer    *geo.Coordinate  `json:"viewer,omitempty"`
	Suggested *posto.Posto     `json:"suggested,omitempty"`
	Route     []geo.Coordinate `json:"route"`
	Loading   bool             `json:"loading"`
	Notice    string           `json:"notice,omitempty"`

	tags tags
}

// tags holds the newest request tag issued per request kind.
type tags struct {
	list    uint64
	suggest uint64
	route   uint64
}

func NewState() State {
	return State{FuelType: posto.Gasolina, Postos: []posto.Posto{}, Route: []geo.Coordinate{}}
}

// Clone returns a copy that shares no slices or pointers with s.
func (s State) Clone() State {
	out := s
	out.Postos = append([]posto.Posto{}, s.Postos...)
	out.Route = append([]geo.Coordinate{}, s.Route...)
	if s.Viewer != nil {
		v := *s.Viewer
		out.Viewer = &v
	}
	if s.Suggested != nil {
		p := *s.Suggested
		out.Suggested = &p
	}
	return out
}

// Action is an input to Reduce.
type Action interface {
	action()
}

type (
	LoadAllRequested struct{}
	TopNRequested    struct{ Fuel posto.FuelType }
	FuelTypeSelected struct{ Fuel posto.FuelType }
	PostosLoaded     struct {
		Tag    uint64
		Postos []posto.Posto
	}
	PostosFailed struct {
		Tag uint64
		Err error
	}
	ViewerLocated    struct{ Coord geo.Coordinate }
	SuggestRequested struct{ Fuel posto.FuelType }
	SuggestionLoaded struct {
		Tag   uint64
		Posto posto.Posto
	}
	SuggestionFailed struct {
		Tag uint64
		Err error
	}
	RouteLoaded struct {
		Tag    uint64
		Points []geo.Coordinate
	}
	RouteFailed struct {
		Tag uint64
		Err error
	}
	// Cleared forgets the viewer location and the suggestion.
	Cleared struct{}
)

func (LoadAllRequested) action() {}
func (TopNRequested) action()    {}
func (FuelTypeSelected) action() {}
func (PostosLoaded) action()     {}
func (PostosFailed) action()     {}
func (ViewerLocated) action()    {}
func (SuggestRequested) action() {}
func (SuggestionLoaded) action() {}
func (SuggestionFailed) action() {}
func (RouteLoaded) action()      {}
func (RouteFailed) action()      {}
func (Cleared) action()          {}

// Reduce applies a to s. It performs no I/O; the returned effects describe what must happen next.
// Responses carrying a tag older than the newest request of their kind are discarded.
func Reduce(s State, a Action) (State, []Effect) {
	next := s.Clone()

	switch a := a.(type) {
	case LoadAllRequested:
		next.tags.list++
		next.Loading = true
		return next, []Effect{FetchPostos{Tag: next.tags.list}}

	case TopNRequested:
		next.FuelType = a.Fuel
		next.tags.list++
		next.Loading = true
		return next, []Effect{FetchPostos{Tag: next.tags.list, Top: true, Fuel: a.Fuel}}

	case FuelTypeSelected:
		next.FuelType = a.Fuel
		return next, nil

	case PostosLoaded:
		if a.Tag != s.tags.list {
			return s, []Effect{StaleDiscarded{Kind: kindList, Tag: a.Tag}}
		}
		next.Postos = append([]posto.Posto{}, a.Postos...)
		next.Loading = false
		return next, nil

	case PostosFailed:
		if a.Tag != s.tags.list {
			return s, []Effect{StaleDiscarded{Kind: kindList, Tag: a.Tag}}
		}
		next.Loading = false
		return next, nil

	case ViewerLocated:
		c := a.Coord
		next.Viewer = &c
		effects := []Effect{OpenPopup{Marker: viewerMarker(c)}}
		var routeEffects []Effect
		next, routeEffects = syncRoute(s, next)
		return next, append(effects, routeEffects...)

	case SuggestRequested:
		next.FuelType = a.Fuel
		if next.Viewer == nil {
			return next, nil
		}
		next.tags.suggest++
		return next, []Effect{FetchSuggestion{Tag: next.tags.suggest, From: *next.Viewer, Fuel: a.Fuel}}

	case SuggestionLoaded:
		if a.Tag != s.tags.suggest {
			return s, []Effect{StaleDiscarded{Kind: kindSuggest, Tag: a.Tag}}
		}
		p := a.Posto
		next.Suggested = &p
		effects := []Effect{
			FlyTo{Center: p.Coordinate(), Zoom: FlyToZoom},
			OpenPopup{Marker: postoMarker(p, next.FuelType, next.Viewer)},
		}
		var routeEffects []Effect
		next, routeEffects = syncRoute(s, next)
		return next, append(effects, routeEffects...)

	case SuggestionFailed:
		if a.Tag != s.tags.suggest {
			return s, []Effect{StaleDiscarded{Kind: kindSuggest, Tag: a.Tag}}
		}
		return next, nil

	case RouteLoaded:
		if a.Tag != s.tags.route {
			return s, []Effect{StaleDiscarded{Kind: kindRoute, Tag: a.Tag}}
		}
		next.Route = append([]geo.Coordinate{}, a.Points...)
		next.Notice = ""
		effects := []Effect{DrawPolyline{Points: next.Route}}
		if b, ok := geo.BoundsOf(next.Route); ok {
			effects = append(effects, FitBounds{Bounds: b, Padding: FitPadding})
		}
		return next, effects

	case RouteFailed:
		if a.Tag != s.tags.route {
			return s, []Effect{StaleDiscarded{Kind: kindRoute, Tag: a.Tag}}
		}
		next.Notice = RouteFailedNotice
		return next, nil

	case Cleared:
		next.Viewer = nil
		next.Suggested = nil
		return syncRoute(s, next)
	}

	return s, nil
}

// syncRoute issues one route request each time the (viewer, suggestion) pair changes with both present,
// and drops the drawn route whenever the pair it was computed for no longer holds.
func syncRoute(prev, next State) (State, []Effect) {
	if samePair(prev, next) {
		return next, nil
	}

	var effects []Effect
	next.tags.route++
	next.Notice = ""
	if len(next.Route) > 0 {
		next.Route = []geo.Coordinate{}
		effects = append(effects, DrawPolyline{Points: next.Route})
	}
	if next.Viewer == nil || next.Suggested == nil {
		return next, effects
	}
	return next, append(effects, FetchRoute{
		Tag:  next.tags.route,
		From: *next.Viewer,
		To:   next.Suggested.Coordinate(),
	})
}

func samePair(a, b State) bool {
	if (a.Viewer == nil) != (b.Viewer == nil) || (a.Suggested == nil) != (b.Suggested == nil) {
		return false
	}
	if a.Viewer != nil && *a.Viewer != *b.Viewer {
		return false
	}
	if a.Suggested != nil && a.Suggested.Coordinate() != b.Suggested.Coordinate() {
		return false
	}
	return true
}
