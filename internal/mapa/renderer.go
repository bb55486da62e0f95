package mapa

import (
	"postos/internal/geo"
)

// Renderer draws on the viewer's map. Calls must not block.
type Renderer interface {
	FitBounds(b geo.Bounds, padding int)
	FlyTo(center geo.Coordinate, zoom int)
	OpenPopup(m Marker)
	DrawPolyline(points []geo.Coordinate)
}

// StateListener is implemented by renderers that also want every committed state.
type StateListener interface {
	StateChanged(s State)
}

// RendererCloser is implemented by renderers that hold resources for their page.
type RendererCloser interface {
	Close()
}

type nopRenderer struct{}

func (nopRenderer) FitBounds(geo.Bounds, int)     {}
func (nopRenderer) FlyTo(geo.Coordinate, int)     {}
func (nopRenderer) OpenPopup(Marker)              {}
func (nopRenderer) DrawPolyline([]geo.Coordinate) {}

// NopRenderer discards every directive.
var NopRenderer Renderer = nopRenderer{}
