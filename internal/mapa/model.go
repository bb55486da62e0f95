package mapa

import (
	"github.com/google/uuid"

	"postos/internal/geo"
)

// DefaultZoom frames the whole country around geo.DefaultCenter.
const DefaultZoom = 4

// SessionResponse carries the initial map view, used until the viewer is located.
type SessionResponse struct {
	ID     uuid.UUID      `json:"id"`
	Centro geo.Coordinate `json:"centro"`
	Zoom   int            `json:"zoom"`
	Estado State          `json:"estado"`
}

// SugerirRequest carries the browser position when the browser has one.
type SugerirRequest struct {
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
	Tipo string   `json:"tipo"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
