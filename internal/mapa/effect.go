package mapa

import (
	"postos/internal/geo"
	"postos/internal/posto"
)

const (
	FitPadding = 50
	FlyToZoom  = 14
)

const (
	kindList    = "list"
	kindSuggest = "suggest"
	kindRoute   = "route"
)

// Effect is a side effect requested by a state transition. Reduce never performs them.
type Effect interface {
	effect()
}

type FetchPostos struct {
	Tag  uint64
	Top  bool
	Fuel posto.FuelType
}

type FetchSuggestion struct {
	Tag  uint64
	From geo.Coordinate
	Fuel posto.FuelType
}

type FetchRoute struct {
	Tag      uint64
	From, To geo.Coordinate
}

type FitBounds struct {
	Bounds  geo.Bounds
	Padding int
}

type FlyTo struct {
	Center geo.Coordinate
	Zoom   int
}

type OpenPopup struct {
	Marker Marker
}

// DrawPolyline replaces the drawn route; an empty slice removes it.
type DrawPolyline struct {
	Points []geo.Coordinate
}

// StaleDiscarded reports a response dropped because a newer request of the same kind exists.
type StaleDiscarded struct {
	Kind string
	Tag  uint64
}

func (FetchPostos) effect()     {}
func (FetchSuggestion) effect() {}
func (FetchRoute) effect()      {}
func (FitBounds) effect()       {}
func (FlyTo) effect()           {}
func (OpenPopup) effect()       {}
func (DrawPolyline) effect()    {}
func (StaleDiscarded) effect()  {}
