package ws

import (
	"github.com/google/uuid"

	"postos/internal/geo"
	"postos/internal/mapa"
)

const (
	TypeFitBounds    = "fitBounds"
	TypeFlyTo        = "flyTo"
	TypeOpenPopup    = "openPopup"
	TypeDrawPolyline = "drawPolyline"
	TypeEstado       = "estado"
)

// Directive is one message pushed to the browser map.
type Directive struct {
	Sessao  uuid.UUID        `json:"sessao"`
	Type    string           `json:"type"`
	Bounds  *geo.Bounds      `json:"bounds,omitempty"`
	Padding int              `json:"padding,omitempty"`
	Center  *geo.Coordinate  `json:"center,omitempty"`
	Zoom    int              `json:"zoom,omitempty"`
	Marker  *mapa.Marker     `json:"marker,omitempty"`
	Points  []geo.Coordinate `json:"points,omitempty"` // absent on drawPolyline clears the line
	Estado  *mapa.State      `json:"estado,omitempty"`
}
