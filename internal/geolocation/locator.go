package geolocation

import (
	"context"
	"errors"

	"postos/internal/geo"
)

var (
	ErrUnsupported = errors.New("geolocalização não suportada")
	ErrUnavailable = errors.New("localização negada ou indisponível")
)

// Locator produces the viewer coordinate once per call.
type Locator interface {
	CurrentCoordinate(ctx context.Context) (geo.Coordinate, error)
}

// UserMessage is the text shown to the viewer when locating fails.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnsupported):
		return "Geolocalização não suportada pelo navegador"
	default:
		return "Erro ao obter localização"
	}
}

// StaticLocator returns a coordinate already captured by the browser.
type StaticLocator struct {
	Coordinate geo.Coordinate
}

func (s StaticLocator) CurrentCoordinate(context.Context) (geo.Coordinate, error) {
	if !s.Coordinate.Valid() {
		return geo.Coordinate{}, ErrUnavailable
	}
	return s.Coordinate, nil
}

type unsupported struct{}

func (unsupported) CurrentCoordinate(context.Context) (geo.Coordinate, error) {
	return geo.Coordinate{}, ErrUnsupported
}

// Unsupported is the locator of an environment with no way to locate the viewer.
var Unsupported Locator = unsupported{}

type fallback struct {
	primary, secondary Locator
}

// Fallback tries primary and only falls through to secondary when primary is unsupported.
// A denial from primary is final.
func Fallback(primary, secondary Locator) Locator {
	return fallback{primary: primary, secondary: secondary}
}

func (f fallback) CurrentCoordinate(ctx context.Context) (geo.Coordinate, error) {
	c, err := f.primary.CurrentCoordinate(ctx)
	if errors.Is(err, ErrUnsupported) {
		return f.secondary.CurrentCoordinate(ctx)
	}
	return c, err
}
